package policies

import (
	"context"
	"errors"
	"fmt"

	"rukorent/internal/domain/booking"
	"rukorent/internal/domain/ruko"
)

// DefaultSubmissionMessage is shown when the remote API gives no usable reason.
const DefaultSubmissionMessage = "failed to create booking, please try again."

var ErrRemoteUnavailable = errors.New("remote api: unavailable")

// SubmissionFailedError is a remote rejection or transport failure of a
// booking POST. It is recoverable by the user submitting again.
type SubmissionFailedError struct {
	Status  int
	Message string
}

func (e *SubmissionFailedError) Error() string {
	if e.Status == 0 {
		return "remote api: submission failed: " + e.Message
	}
	return fmt.Sprintf("remote api: submission failed (%d): %s", e.Status, e.Message)
}

// MalformedResponseError means the remote API answered with a payload that
// does not have the shape the gateway relies on.
type MalformedResponseError struct {
	Operation string
	Reason    string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("remote api: malformed %s response: %s", e.Operation, e.Reason)
}

// CreateBookingRequest mirrors the remote POST /bookings body.
type CreateBookingRequest struct {
	RukoID        ruko.RukoID
	TenantID      string
	StartDate     string
	EndDate       string
	PaymentMethod booking.PaymentMethod
	DiscountCode  string
}

// BookingAPI is the remote system of record for bookings.
type BookingAPI interface {
	CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (booking.BookingID, error)
}

// RukoCatalog reads listings from the remote API.
type RukoCatalog interface {
	ListRuko(ctx context.Context) ([]ruko.Ruko, error)
	GetRuko(ctx context.Context, id ruko.RukoID) (ruko.Ruko, error)
}
