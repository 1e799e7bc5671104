package checkout

import (
	"context"
	"errors"
	"time"

	"rukorent/internal/domain/booking"
	"rukorent/internal/domain/payment"
	"rukorent/internal/domain/pricing"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/daterange"
	"rukorent/internal/domain/shared/events"
)

var (
	ErrCheckoutNotFound = errors.New("checkout: not found")
	ErrNotOwner         = errors.New("checkout: belongs to another tenant")
	ErrInvalidState     = errors.New("checkout: invalid state transition")
)

type Status string

const (
	StatusAwaitingMethod  Status = "awaiting_method"
	StatusAwaitingPayment Status = "awaiting_payment"
)

// Checkout carries a submitted booking from the booking step to the payment
// step so the price is never recomputed. It is session scoped and expires.
type Checkout struct {
	BookingID booking.BookingID
	TenantID  string
	Ruko      ruko.Ruko
	Draft     booking.Draft
	Price     pricing.PriceBreakdown
	Payment   *payment.Instruction
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	events.EventRecorder
}

type Store interface {
	Save(ctx context.Context, c *Checkout) error
	Get(ctx context.Context, id booking.BookingID) (*Checkout, error)
}

type CreateParams struct {
	BookingID booking.BookingID
	TenantID  string
	Ruko      ruko.Ruko
	Draft     booking.Draft
	Price     pricing.PriceBreakdown
	Now       time.Time
}

func New(params CreateParams) *Checkout {
	now := params.Now.UTC()
	c := &Checkout{
		BookingID: params.BookingID,
		TenantID:  params.TenantID,
		Ruko:      params.Ruko,
		Draft:     params.Draft,
		Price:     params.Price,
		Status:    StatusAwaitingMethod,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Record(booking.BookingSubmitted{
		BookingID:     c.BookingID,
		RukoID:        c.Ruko.ID,
		TenantID:      c.TenantID,
		StartDate:     daterange.FormatDate(c.Draft.Start),
		EndDate:       daterange.FormatDate(c.Draft.End),
		Months:        c.Price.Months,
		PaymentMethod: c.Draft.PaymentMethod,
		Total:         c.Price.Total,
		At:            now,
	})
	return c
}

// EnsureOwner hides other tenants' checkouts behind ErrNotOwner.
func (c *Checkout) EnsureOwner(tenantID string) error {
	if c.TenantID != tenantID {
		return ErrNotOwner
	}
	return nil
}

func (c *Checkout) Quote() payment.Quote {
	return payment.QuoteFor(c.Price.Total)
}

// Instruct records the payment channel; it may be changed until paid elsewhere.
func (c *Checkout) Instruct(ins payment.Instruction, now time.Time) error {
	switch c.Status {
	case StatusAwaitingMethod, StatusAwaitingPayment:
	default:
		return ErrInvalidState
	}
	c.Payment = &ins
	c.Status = StatusAwaitingPayment
	c.UpdatedAt = now.UTC()
	c.Record(booking.PaymentInstructed{
		BookingID: c.BookingID,
		TenantID:  c.TenantID,
		Method:    ins.Method.ID,
		Total:     ins.Amount,
		At:        c.UpdatedAt,
	})
	return nil
}
