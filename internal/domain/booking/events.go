package booking

import (
	"time"

	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/money"
)

type BookingSubmitted struct {
	BookingID     BookingID     `json:"booking_id"`
	RukoID        ruko.RukoID   `json:"ruko_id"`
	TenantID      string        `json:"tenant_id"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	Months        int           `json:"months"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Total         money.Money   `json:"total"`
	At            time.Time     `json:"at"`
}

func (e BookingSubmitted) EventName() string     { return "booking.submitted" }
func (e BookingSubmitted) AggregateID() string   { return string(e.BookingID) }
func (e BookingSubmitted) OccurredAt() time.Time { return e.At }

type PaymentInstructed struct {
	BookingID BookingID   `json:"booking_id"`
	TenantID  string      `json:"tenant_id"`
	Method    string      `json:"method"`
	Total     money.Money `json:"total"`
	At        time.Time   `json:"at"`
}

func (e PaymentInstructed) EventName() string     { return "payment.instructed" }
func (e PaymentInstructed) AggregateID() string   { return string(e.BookingID) }
func (e PaymentInstructed) OccurredAt() time.Time { return e.At }
