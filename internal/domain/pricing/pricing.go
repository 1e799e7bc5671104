package pricing

import (
	"strings"
	"time"

	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/daterange"
	"rukorent/internal/domain/shared/money"
)

const (
	// PromoCode is the single discount code honoured by the booking flow.
	PromoCode = "PROMO10"

	taxPercent      = 10
	discountPercent = 10
	monthsPerYear   = 12
)

// PriceBreakdown is derived from a draft on every change and never mutated.
// Subtotal, Tax and Discount are rounded half-up on their own for display; Total
// is computed from the unrounded components and rounded once.
type PriceBreakdown struct {
	Months          int
	RentalType      ruko.RentalType
	BasePrice       money.Money
	Subtotal        money.Money
	Tax             money.Money
	Discount        money.Money
	Total           money.Money
	DiscountApplied bool
}

// DiscountRecognized reports whether code unlocks the promo discount.
func DiscountRecognized(code string) bool {
	return strings.EqualFold(code, PromoCode)
}

// ComputePrice prices months of a ruko whose basePrice is per period of
// rentalType. For yearly rentals the elapsed periods are months/12.
func ComputePrice(basePrice money.Money, rentalType ruko.RentalType, months int, discountCode string) PriceBreakdown {
	if months < 0 {
		months = 0
	}
	currency := basePrice.Currency
	if currency == "" {
		currency = money.IDR
	}
	periodDen := int64(1)
	if rentalType == ruko.RentalYearly {
		periodDen = monthsPerYear
	}
	applied := DiscountRecognized(discountCode)

	// base*months/periodDen is the exact subtotal; everything else is a
	// percentage of it. Products are carried exactly and amounts past the int64
	// range saturate.
	discountPct := int64(0)
	if applied {
		discountPct = discountPercent
	}
	totalPct := 100 + taxPercent - discountPct

	amount := func(pct, den int64) money.Money {
		v, _ := money.Scale(basePrice.Amount, int64(months)*pct, den)
		return money.Money{Amount: v, Currency: currency}
	}
	return PriceBreakdown{
		Months:          months,
		RentalType:      rentalType,
		BasePrice:       money.Money{Amount: basePrice.Amount, Currency: currency},
		Subtotal:        amount(100, 100*periodDen),
		Tax:             amount(taxPercent, 100*periodDen),
		Discount:        amount(discountPct, 100*periodDen),
		Total:           amount(totalPct, 100*periodDen),
		DiscountApplied: applied,
	}
}

// Quote prices a stay from start to end using the ruko's own price and cadence.
func Quote(r ruko.Ruko, start, end time.Time, discountCode string) PriceBreakdown {
	months := 0
	if period, err := daterange.New(start, end); err == nil {
		months = period.Months()
	}
	return ComputePrice(r.Price, r.RentalType, months, discountCode)
}

// Periods is the number of billed periods, possibly fractional for yearly rentals.
func (p PriceBreakdown) Periods() float64 {
	if p.RentalType == ruko.RentalYearly {
		return float64(p.Months) / monthsPerYear
	}
	return float64(p.Months)
}
