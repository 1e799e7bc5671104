package dto

import (
	"rukorent/internal/domain/booking"
	"rukorent/internal/domain/pricing"
)

type PriceBreakdown struct {
	Months          int      `json:"duration_months"`
	Periods         float64  `json:"periods"`
	PeriodUnit      string   `json:"period_unit"`
	BasePrice       MoneyDTO `json:"base_price"`
	Subtotal        MoneyDTO `json:"subtotal"`
	Tax             MoneyDTO `json:"tax"`
	Discount        MoneyDTO `json:"discount_amount"`
	Total           MoneyDTO `json:"total"`
	DiscountApplied bool     `json:"discount_applied"`
}

type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type BookingQuote struct {
	Ruko            RukoSummary    `json:"ruko"`
	Price           PriceBreakdown `json:"price"`
	Validation      Validation     `json:"validation"`
	PromoRecognized bool           `json:"promo_recognized"`
}

type SubmittedBooking struct {
	BookingID  string         `json:"booking_id"`
	Price      PriceBreakdown `json:"price"`
	RedirectTo string         `json:"redirect_to"`
}

func MapPrice(p pricing.PriceBreakdown) PriceBreakdown {
	return PriceBreakdown{
		Months:          p.Months,
		Periods:         p.Periods(),
		PeriodUnit:      p.RentalType.Unit(),
		BasePrice:       MapMoney(p.BasePrice),
		Subtotal:        MapMoney(p.Subtotal),
		Tax:             MapMoney(p.Tax),
		Discount:        MapMoney(p.Discount),
		Total:           MapMoney(p.Total),
		DiscountApplied: p.DiscountApplied,
	}
}

func MapValidation(v booking.ValidationResult) Validation {
	return Validation{Valid: v.Valid, Reason: v.Reason}
}
