package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"rukorent/internal/app/commands"
	"rukorent/internal/app/dto"
	"rukorent/internal/app/middleware"
	"rukorent/internal/app/outbox"
	"rukorent/internal/app/policies"
	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	"rukorent/internal/domain/pricing"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/session"
	"rukorent/internal/domain/shared/daterange"
)

const submitBookingKey = "booking.submit"

var ErrNotValidated = errors.New("booking: draft has not passed validation")

type SubmitBookingCommand struct {
	Session   session.Session
	Draft     domainbooking.Draft
	RequestID string
}

func (c SubmitBookingCommand) Key() string { return submitBookingKey }

// ExclusiveKey allows one outstanding submission per tenant.
func (c SubmitBookingCommand) ExclusiveKey() string {
	if c.Session.UserID == "" {
		return ""
	}
	return submitBookingKey + ":" + c.Session.UserID
}

func (c SubmitBookingCommand) CallerSession() session.Session { return c.Session }

type SubmitBookingHandler struct {
	Catalog   policies.RukoCatalog
	Bookings  policies.BookingAPI
	Checkouts checkout.Store
	Outbox    outbox.Outbox
	Encoder   outbox.EventEncoder
	Logger    *slog.Logger
	Now       func() time.Time
}

// Handle validates the draft against the ruko it targets and, when valid,
// submits it to the remote API exactly once.
func (h *SubmitBookingHandler) Handle(ctx context.Context, cmd SubmitBookingCommand) (dto.SubmittedBooking, error) {
	if err := cmd.Session.Require(); err != nil {
		return dto.SubmittedBooking{}, err
	}
	draft := cmd.Draft.Normalized()
	r, err := h.Catalog.GetRuko(ctx, draft.RukoID)
	if err != nil {
		return dto.SubmittedBooking{}, err
	}
	validation := domainbooking.Validate(r.RentalType, draft)
	return h.submit(ctx, cmd.Session, r, draft, validation, cmd.RequestID)
}

func (h *SubmitBookingHandler) submit(ctx context.Context, sess session.Session, r ruko.Ruko, draft domainbooking.Draft, validation domainbooking.ValidationResult, requestID string) (dto.SubmittedBooking, error) {
	if !validation.Valid {
		return dto.SubmittedBooking{}, fmt.Errorf("%w: %w", ErrNotValidated, validation.Err())
	}
	price := pricing.Quote(r, draft.Start, draft.End, draft.DiscountCode)

	id, err := h.Bookings.CreateBooking(ctx, sess.Token, policies.CreateBookingRequest{
		RukoID:        r.ID,
		TenantID:      sess.UserID,
		StartDate:     daterange.FormatDate(draft.Start),
		EndDate:       daterange.FormatDate(draft.End),
		PaymentMethod: draft.PaymentMethod,
		DiscountCode:  draft.DiscountCode,
	})
	if err != nil {
		h.logError(ctx, "booking submission failed", r.ID, err)
		return dto.SubmittedBooking{}, err
	}

	co := checkout.New(checkout.CreateParams{
		BookingID: id,
		TenantID:  sess.UserID,
		Ruko:      r,
		Draft:     draft,
		Price:     price,
		Now:       h.now(),
	})
	// The remote booking exists at this point; failing the request would invite
	// a duplicate submission, so storage problems are only logged.
	if h.Checkouts != nil {
		if err := h.Checkouts.Save(ctx, co); err != nil {
			h.logError(ctx, "checkout save failed", r.ID, err)
		}
	}
	pending := co.PendingEvents()
	co.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, requestID, pending); err != nil {
		h.logError(ctx, "booking events not recorded", r.ID, err)
	}
	if h.Logger != nil {
		h.Logger.InfoContext(ctx, "booking submitted", "booking_id", id, "ruko_id", r.ID, "tenant_id", sess.UserID, "months", price.Months, "total", price.Total.Amount)
	}

	return dto.SubmittedBooking{
		BookingID:  string(id),
		Price:      dto.MapPrice(price),
		RedirectTo: "/payment?booking=" + url.QueryEscape(string(id)),
	}, nil
}

func (h *SubmitBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *SubmitBookingHandler) logError(ctx context.Context, msg string, rukoID ruko.RukoID, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.ErrorContext(ctx, msg, "ruko_id", rukoID, "error", err)
}

var (
	_ commands.Handler[SubmitBookingCommand, dto.SubmittedBooking] = (*SubmitBookingHandler)(nil)
	_ middleware.ExclusiveCommand                                   = SubmitBookingCommand{}
	_ middleware.SessionBound                                       = SubmitBookingCommand{}
)
