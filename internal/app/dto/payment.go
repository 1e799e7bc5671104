package dto

import (
	"rukorent/internal/domain/checkout"
	"rukorent/internal/domain/payment"
)

type PaymentInstruction struct {
	Method        payment.Method `json:"method"`
	AccountNumber string         `json:"account_number"`
	Amount        MoneyDTO       `json:"amount"`
}

type PaymentQuote struct {
	BookingID    string              `json:"booking_id"`
	RukoName     string              `json:"ruko_name"`
	RukoImage    string              `json:"ruko_image,omitempty"`
	Duration     int                 `json:"duration"`
	Unit         string              `json:"unit"`
	Total        MoneyDTO            `json:"total"`
	AdminFee     MoneyDTO            `json:"admin_fee"`
	TotalWithFee MoneyDTO            `json:"total_with_fee"`
	Status       string              `json:"status"`
	Methods      []payment.Method    `json:"methods"`
	Instruction  *PaymentInstruction `json:"instruction,omitempty"`
}

type PaymentConfirmation struct {
	BookingID   string             `json:"booking_id"`
	Status      string             `json:"status"`
	Instruction PaymentInstruction `json:"instruction"`
	RedirectTo  string             `json:"redirect_to"`
}

func MapInstruction(ins payment.Instruction) PaymentInstruction {
	return PaymentInstruction{Method: ins.Method, AccountNumber: ins.AccountNumber, Amount: MapMoney(ins.Amount)}
}

// MapPaymentQuote shows the duration in months, the unit the booking form used.
func MapPaymentQuote(c *checkout.Checkout) PaymentQuote {
	q := c.Quote()
	out := PaymentQuote{
		BookingID:    string(c.BookingID),
		RukoName:     c.Ruko.Name,
		RukoImage:    c.Ruko.Image,
		Duration:     c.Price.Months,
		Unit:         "bulan",
		Total:        MapMoney(q.Total),
		AdminFee:     MapMoney(q.AdminFee),
		TotalWithFee: MapMoney(q.TotalWithFee),
		Status:       string(c.Status),
		Methods:      payment.Methods(),
	}
	if c.Payment != nil {
		ins := MapInstruction(*c.Payment)
		out.Instruction = &ins
	}
	return out
}
