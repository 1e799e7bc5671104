package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rukorent/internal/app/outbox"
	"rukorent/internal/app/policies"
	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/session"
	"rukorent/internal/domain/shared/money"
)

type catalogStub struct {
	items map[ruko.RukoID]ruko.Ruko
}

func (c catalogStub) ListRuko(ctx context.Context) ([]ruko.Ruko, error) {
	out := make([]ruko.Ruko, 0, len(c.items))
	for _, r := range c.items {
		out = append(out, r)
	}
	return out, nil
}

func (c catalogStub) GetRuko(ctx context.Context, id ruko.RukoID) (ruko.Ruko, error) {
	r, ok := c.items[id]
	if !ok {
		return ruko.Ruko{}, ruko.ErrRukoNotFound
	}
	return r, nil
}

type bookingAPIMock struct {
	createFn func(ctx context.Context, token string, req policies.CreateBookingRequest) (domainbooking.BookingID, error)
	calls    int
}

func (m *bookingAPIMock) CreateBooking(ctx context.Context, token string, req policies.CreateBookingRequest) (domainbooking.BookingID, error) {
	m.calls++
	return m.createFn(ctx, token, req)
}

type checkoutMap map[domainbooking.BookingID]*checkout.Checkout

func (m checkoutMap) Save(ctx context.Context, c *checkout.Checkout) error {
	m[c.BookingID] = c
	return nil
}

func (m checkoutMap) Get(ctx context.Context, id domainbooking.BookingID) (*checkout.Checkout, error) {
	c, ok := m[id]
	if !ok {
		return nil, checkout.ErrCheckoutNotFound
	}
	return c, nil
}

type recordingOutbox struct {
	records []outbox.EventRecord
}

func (o *recordingOutbox) Add(ctx context.Context, rec outbox.EventRecord) error {
	o.records = append(o.records, rec)
	return nil
}

var (
	tenantSession = session.Session{Token: "tok-123", UserID: "665f1c", Role: session.RoleTenant}
	fixedNow      = time.Date(2025, time.January, 2, 10, 0, 0, 0, time.UTC)
)

func testCatalog() catalogStub {
	return catalogStub{items: map[ruko.RukoID]ruko.Ruko{
		"r-1": {ID: "r-1", Name: "Ruko Mawar", Price: money.Rupiah(5_000_000), RentalType: ruko.RentalMonthly},
		"r-2": {ID: "r-2", Name: "Ruko Anggrek", Price: money.Rupiah(60_000_000), RentalType: ruko.RentalYearly},
	}}
}

func validDraft() domainbooking.Draft {
	return domainbooking.Draft{
		RukoID:       "r-1",
		Start:        time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
		DiscountCode: "PROMO10",
		Tenant:       domainbooking.Tenant{FullName: "Budi Santoso", Email: "budi@example.com", Phone: "+62 812 1111 2222"},
	}
}

func newSubmitHandler(api *bookingAPIMock) (*SubmitBookingHandler, checkoutMap, *recordingOutbox) {
	store := checkoutMap{}
	box := &recordingOutbox{}
	return &SubmitBookingHandler{
		Catalog:   testCatalog(),
		Bookings:  api,
		Checkouts: store,
		Outbox:    box,
		Now:       func() time.Time { return fixedNow },
	}, store, box
}

func TestSubmitBookingSuccess(t *testing.T) {
	var sent policies.CreateBookingRequest
	var sentToken string
	api := &bookingAPIMock{createFn: func(ctx context.Context, token string, req policies.CreateBookingRequest) (domainbooking.BookingID, error) {
		sentToken, sent = token, req
		return "bk-100", nil
	}}
	h, store, box := newSubmitHandler(api)

	res, err := h.Handle(context.Background(), SubmitBookingCommand{Session: tenantSession, Draft: validDraft(), RequestID: "req-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, api.calls)
	assert.Equal(t, "tok-123", sentToken)
	assert.Equal(t, policies.CreateBookingRequest{
		RukoID:        "r-1",
		TenantID:      "665f1c",
		StartDate:     "2025-01-10",
		EndDate:       "2025-02-10",
		PaymentMethod: domainbooking.PaymentOnline,
		DiscountCode:  "PROMO10",
	}, sent)

	assert.Equal(t, "bk-100", res.BookingID)
	assert.Equal(t, "/payment?booking=bk-100", res.RedirectTo)
	assert.Equal(t, 1, res.Price.Months)
	assert.Equal(t, int64(5_000_000), res.Price.Subtotal.Amount)
	assert.Equal(t, int64(500_000), res.Price.Tax.Amount)
	assert.Equal(t, int64(500_000), res.Price.Discount.Amount)
	assert.Equal(t, int64(5_000_000), res.Price.Total.Amount)

	saved, ok := store["bk-100"]
	require.True(t, ok)
	assert.Equal(t, "665f1c", saved.TenantID)
	assert.Equal(t, money.Rupiah(5_000_000), saved.Price.Total)
	assert.Equal(t, checkout.StatusAwaitingMethod, saved.Status)
	assert.Empty(t, saved.PendingEvents())

	require.Len(t, box.records, 1)
	assert.Equal(t, "booking.submitted", box.records[0].Name)
	assert.Equal(t, "req-1", box.records[0].Headers["x-request-id"])
}

func TestSubmitBookingRejectsInvalidDraftWithoutCallingAPI(t *testing.T) {
	api := &bookingAPIMock{createFn: func(ctx context.Context, token string, req policies.CreateBookingRequest) (domainbooking.BookingID, error) {
		t.Fatal("remote api must not be called")
		return "", nil
	}}
	h, store, _ := newSubmitHandler(api)

	draft := validDraft()
	draft.End = time.Date(2025, time.January, 25, 0, 0, 0, 0, time.UTC)
	_, err := h.Handle(context.Background(), SubmitBookingCommand{Session: tenantSession, Draft: draft})

	assert.ErrorIs(t, err, ErrNotValidated)
	var verr *domainbooking.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domainbooking.ReasonMinimumMonth, verr.Reason)
	assert.Empty(t, store)
}

func TestSubmitBookingYearlyMinimum(t *testing.T) {
	api := &bookingAPIMock{createFn: func(ctx context.Context, token string, req policies.CreateBookingRequest) (domainbooking.BookingID, error) {
		return "bk-1", nil
	}}
	h, _, _ := newSubmitHandler(api)
	draft := validDraft()
	draft.RukoID = "r-2"
	_, err := h.Handle(context.Background(), SubmitBookingCommand{Session: tenantSession, Draft: draft})

	var verr *domainbooking.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domainbooking.ReasonMinimumYear, verr.Reason)
	assert.Zero(t, api.calls)
}

func TestSubmitBookingRequiresSession(t *testing.T) {
	api := &bookingAPIMock{}
	h, _, _ := newSubmitHandler(api)

	_, err := h.Handle(context.Background(), SubmitBookingCommand{Session: session.Session{UserID: "665f1c"}, Draft: validDraft()})
	assert.ErrorIs(t, err, session.ErrUnauthenticated)
	assert.Zero(t, api.calls)
}

func TestSubmitBookingPropagatesRemoteFailure(t *testing.T) {
	api := &bookingAPIMock{createFn: func(ctx context.Context, token string, req policies.CreateBookingRequest) (domainbooking.BookingID, error) {
		return "", &policies.SubmissionFailedError{Status: 409, Message: "ruko sudah dibooking"}
	}}
	h, store, box := newSubmitHandler(api)

	_, err := h.Handle(context.Background(), SubmitBookingCommand{Session: tenantSession, Draft: validDraft()})
	var failed *policies.SubmissionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "ruko sudah dibooking", failed.Message)
	assert.Equal(t, 1, api.calls, "no retry")
	assert.Empty(t, store)
	assert.Empty(t, box.records)
}

func TestSubmitBookingUnknownRuko(t *testing.T) {
	h, _, _ := newSubmitHandler(&bookingAPIMock{})
	draft := validDraft()
	draft.RukoID = "missing"
	_, err := h.Handle(context.Background(), SubmitBookingCommand{Session: tenantSession, Draft: draft})
	assert.ErrorIs(t, err, ruko.ErrRukoNotFound)
}

func TestSubmitCommandKeys(t *testing.T) {
	cmd := SubmitBookingCommand{Session: tenantSession}
	assert.Equal(t, "booking.submit:665f1c", cmd.ExclusiveKey())
	assert.Equal(t, "", SubmitBookingCommand{}.ExclusiveKey())
}

func TestQuoteBooking(t *testing.T) {
	h := &QuoteBookingHandler{Catalog: testCatalog()}

	res, err := h.Handle(context.Background(), QuoteBookingQuery{Draft: validDraft()})
	require.NoError(t, err)
	assert.True(t, res.Validation.Valid)
	assert.True(t, res.PromoRecognized)
	assert.Equal(t, "Ruko Mawar", res.Ruko.Name)
	assert.Equal(t, int64(5_000_000), res.Price.Total.Amount)

	draft := validDraft()
	draft.Tenant = domainbooking.Tenant{}
	draft.DiscountCode = "HEMAT"
	res, err = h.Handle(context.Background(), QuoteBookingQuery{Draft: draft})
	require.NoError(t, err)
	assert.False(t, res.Validation.Valid)
	assert.Equal(t, domainbooking.ReasonTenantIncomplete, res.Validation.Reason)
	assert.False(t, res.PromoRecognized)
	assert.Equal(t, int64(5_500_000), res.Price.Total.Amount)
}
