package payment

import (
	"context"
	"log/slog"
	"time"

	"rukorent/internal/app/commands"
	"rukorent/internal/app/dto"
	"rukorent/internal/app/middleware"
	"rukorent/internal/app/outbox"
	"rukorent/internal/app/queries"
	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	domainpayment "rukorent/internal/domain/payment"
	"rukorent/internal/domain/session"
)

const (
	getPaymentQuoteKey = "payment.quote"
	confirmPaymentKey  = "payment.confirm"
)

type GetPaymentQuoteQuery struct {
	Session   session.Session
	BookingID domainbooking.BookingID
}

func (q GetPaymentQuoteQuery) Key() string                     { return getPaymentQuoteKey }
func (q GetPaymentQuoteQuery) CallerSession() session.Session { return q.Session }

type GetPaymentQuoteHandler struct {
	Checkouts checkout.Store
}

func (h *GetPaymentQuoteHandler) Handle(ctx context.Context, q GetPaymentQuoteQuery) (dto.PaymentQuote, error) {
	co, err := loadOwned(ctx, h.Checkouts, q.Session, q.BookingID)
	if err != nil {
		return dto.PaymentQuote{}, err
	}
	return dto.MapPaymentQuote(co), nil
}

type ConfirmPaymentCommand struct {
	Session       session.Session
	BookingID     domainbooking.BookingID
	MethodID      string
	AccountNumber string
	RequestID     string
}

func (c ConfirmPaymentCommand) Key() string                     { return confirmPaymentKey }
func (c ConfirmPaymentCommand) CallerSession() session.Session { return c.Session }
func (c ConfirmPaymentCommand) ExclusiveKey() string {
	return confirmPaymentKey + ":" + string(c.BookingID)
}

// ConfirmPaymentHandler records the tenant's payment channel on the checkout.
// Settlement itself happens outside this gateway.
type ConfirmPaymentHandler struct {
	Checkouts checkout.Store
	Outbox    outbox.Outbox
	Encoder   outbox.EventEncoder
	Logger    *slog.Logger
	Now       func() time.Time
}

func (h *ConfirmPaymentHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (dto.PaymentConfirmation, error) {
	co, err := loadOwned(ctx, h.Checkouts, cmd.Session, cmd.BookingID)
	if err != nil {
		return dto.PaymentConfirmation{}, err
	}
	ins, err := domainpayment.NewInstruction(cmd.MethodID, cmd.AccountNumber, co.Quote())
	if err != nil {
		return dto.PaymentConfirmation{}, err
	}
	if err := co.Instruct(ins, h.now()); err != nil {
		return dto.PaymentConfirmation{}, err
	}
	if err := h.Checkouts.Save(ctx, co); err != nil {
		return dto.PaymentConfirmation{}, err
	}
	pending := co.PendingEvents()
	co.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, cmd.RequestID, pending); err != nil && h.Logger != nil {
		h.Logger.ErrorContext(ctx, "payment events not recorded", "booking_id", co.BookingID, "error", err)
	}
	if h.Logger != nil {
		h.Logger.InfoContext(ctx, "payment instructed", "booking_id", co.BookingID, "method", ins.Method.ID, "amount", ins.Amount.Amount)
	}
	return dto.PaymentConfirmation{
		BookingID:   string(co.BookingID),
		Status:      string(co.Status),
		Instruction: dto.MapInstruction(ins),
		RedirectTo:  "/",
	}, nil
}

func (h *ConfirmPaymentHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func loadOwned(ctx context.Context, store checkout.Store, sess session.Session, id domainbooking.BookingID) (*checkout.Checkout, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	co, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Another tenant's checkout is reported as missing.
	if err := co.EnsureOwner(sess.UserID); err != nil {
		return nil, checkout.ErrCheckoutNotFound
	}
	return co, nil
}

var (
	_ queries.Handler[GetPaymentQuoteQuery, dto.PaymentQuote]           = (*GetPaymentQuoteHandler)(nil)
	_ commands.Handler[ConfirmPaymentCommand, dto.PaymentConfirmation] = (*ConfirmPaymentHandler)(nil)
	_ middleware.ExclusiveCommand                                       = ConfirmPaymentCommand{}
	_ middleware.SessionBound                                           = GetPaymentQuoteQuery{}
)
