package booking

import (
	"strings"
	"time"

	"rukorent/internal/domain/ruko"
)

type BookingID string

// PaymentMethod is how the tenant intends to settle; only online is offered.
type PaymentMethod string

const PaymentOnline PaymentMethod = "online"

// Tenant holds the contact details typed into the booking form.
type Tenant struct {
	FullName string
	Email    string
	Phone    string
}

func (t Tenant) Complete() bool {
	return strings.TrimSpace(t.FullName) != "" &&
		strings.TrimSpace(t.Email) != "" &&
		strings.TrimSpace(t.Phone) != ""
}

// Draft is the transient booking form state. It lives until submission succeeds
// and is then superseded by the record the remote API owns.
type Draft struct {
	RukoID          ruko.RukoID
	Start           time.Time
	End             time.Time
	DiscountCode    string
	Tenant          Tenant
	SpecialRequests string
	PaymentMethod   PaymentMethod
}

// Normalized trims tenant free text and defaults the payment method. The
// discount code is kept as entered.
func (d Draft) Normalized() Draft {
	n := d
	n.Tenant.FullName = strings.TrimSpace(n.Tenant.FullName)
	n.Tenant.Email = strings.TrimSpace(n.Tenant.Email)
	n.Tenant.Phone = strings.TrimSpace(n.Tenant.Phone)
	n.SpecialRequests = strings.TrimSpace(n.SpecialRequests)
	if n.PaymentMethod == "" {
		n.PaymentMethod = PaymentOnline
	}
	return n
}
