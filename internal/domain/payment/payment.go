package payment

import (
	"errors"
	"strings"

	"rukorent/internal/domain/shared/money"
)

var (
	ErrUnknownMethod         = errors.New("payment: unknown payment method")
	ErrAccountNumberRequired = errors.New("payment: account number or phone number required")
)

// adminFeeBasisPoints is the 1.5% processing fee added on top of the booking total.
const adminFeeBasisPoints = 150

type MethodKind string

const (
	KindBank    MethodKind = "bank"
	KindEWallet MethodKind = "ewallet"
)

type Method struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Kind MethodKind `json:"type"`
}

var methods = []Method{
	{ID: "bca", Name: "Transfer Bank BCA", Kind: KindBank},
	{ID: "bni", Name: "Transfer Bank BNI", Kind: KindBank},
	{ID: "mandiri", Name: "Transfer Bank Mandiri", Kind: KindBank},
	{ID: "bri", Name: "Transfer Bank BRI", Kind: KindBank},
	{ID: "dana", Name: "E-Wallet DANA", Kind: KindEWallet},
	{ID: "ovo", Name: "E-Wallet OVO", Kind: KindEWallet},
	{ID: "gopay", Name: "E-Wallet GoPay", Kind: KindEWallet},
	{ID: "shopeepay", Name: "E-Wallet ShopeePay", Kind: KindEWallet},
}

// Methods lists the supported channels in display order.
func Methods() []Method {
	return append([]Method(nil), methods...)
}

func LookupMethod(id string) (Method, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, m := range methods {
		if m.ID == id {
			return m, nil
		}
	}
	return Method{}, ErrUnknownMethod
}

// Quote is what the tenant is asked to pay for a submitted booking.
type Quote struct {
	Total        money.Money
	AdminFee     money.Money
	TotalWithFee money.Money
}

// QuoteFor adds the admin fee, floored to whole rupiah. A total without a
// currency is treated as rupiah.
func QuoteFor(total money.Money) Quote {
	if total.Currency == "" {
		total.Currency = money.IDR
	}
	fee := total.FloorPercent(adminFeeBasisPoints)
	return Quote{
		Total:        total,
		AdminFee:     fee,
		TotalWithFee: money.Money{Amount: total.Amount + fee.Amount, Currency: total.Currency},
	}
}

// Instruction is the tenant's chosen channel and account for settling a quote.
type Instruction struct {
	Method        Method
	AccountNumber string
	Amount        money.Money
}

func NewInstruction(methodID, accountNumber string, q Quote) (Instruction, error) {
	m, err := LookupMethod(methodID)
	if err != nil {
		return Instruction{}, err
	}
	account := strings.TrimSpace(accountNumber)
	if account == "" {
		return Instruction{}, ErrAccountNumberRequired
	}
	return Instruction{Method: m, AccountNumber: account, Amount: q.TotalWithFee}, nil
}
