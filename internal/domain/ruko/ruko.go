package ruko

import (
	"errors"
	"strings"

	"rukorent/internal/domain/shared/money"
)

var (
	ErrUnknownRentalType = errors.New("ruko: unknown rental type")
	ErrRukoNotFound      = errors.New("ruko: not found")
	ErrNegativePrice     = errors.New("ruko: price must be non-negative")
	ErrPriceOutOfRange   = errors.New("ruko: price out of range")
)

type RukoID string

// RentalType is the billing cadence a ruko is priced in.
type RentalType string

const (
	RentalMonthly RentalType = "monthly"
	RentalYearly  RentalType = "yearly"
)

// ParseRentalType accepts the API values and their Indonesian spellings.
func ParseRentalType(raw string) (RentalType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "monthly", "bulanan", "bulan":
		return RentalMonthly, nil
	case "yearly", "tahunan", "tahun":
		return RentalYearly, nil
	default:
		return "", ErrUnknownRentalType
	}
}

func (t RentalType) Valid() bool {
	return t == RentalMonthly || t == RentalYearly
}

// Label is the human readable cadence shown next to a price.
func (t RentalType) Label() string {
	if t == RentalYearly {
		return "Per Tahun"
	}
	return "Per Bulan"
}

// Unit names one period of the cadence.
func (t RentalType) Unit() string {
	if t == RentalYearly {
		return "tahun"
	}
	return "bulan"
}

// Ruko is the shop-house listing as served by the remote API. Price is per
// period of RentalType.
type Ruko struct {
	ID          RukoID
	Name        string
	Price       money.Money
	RentalType  RentalType
	Size        string
	Location    string
	Description string
	Image       string
	OwnerID     string
}

// MaxPrice is the largest per-period price, in rupiah, a listing may carry.
const MaxPrice = 1_000_000_000_000

// Validate checks that the listing can be priced. The rental type is left to
// booking validation, which reports an unknown cadence to the tenant.
func (r Ruko) Validate() error {
	switch {
	case r.Price.Amount < 0:
		return ErrNegativePrice
	case r.Price.Amount > MaxPrice:
		return ErrPriceOutOfRange
	}
	return nil
}
