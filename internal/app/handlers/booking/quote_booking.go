package booking

import (
	"context"

	"rukorent/internal/app/dto"
	"rukorent/internal/app/policies"
	"rukorent/internal/app/queries"
	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/pricing"
)

const quoteBookingKey = "booking.quote"

// QuoteBookingQuery previews the price and validation of a draft without submitting it.
type QuoteBookingQuery struct {
	Draft domainbooking.Draft
}

func (q QuoteBookingQuery) Key() string { return quoteBookingKey }

type QuoteBookingHandler struct {
	Catalog policies.RukoCatalog
}

func (h *QuoteBookingHandler) Handle(ctx context.Context, q QuoteBookingQuery) (dto.BookingQuote, error) {
	draft := q.Draft.Normalized()
	r, err := h.Catalog.GetRuko(ctx, draft.RukoID)
	if err != nil {
		return dto.BookingQuote{}, err
	}
	return dto.BookingQuote{
		Ruko:            dto.MapRuko(r),
		Price:           dto.MapPrice(pricing.Quote(r, draft.Start, draft.End, draft.DiscountCode)),
		Validation:      dto.MapValidation(domainbooking.Validate(r.RentalType, draft)),
		PromoRecognized: pricing.DiscountRecognized(draft.DiscountCode),
	}, nil
}

var _ queries.Handler[QuoteBookingQuery, dto.BookingQuote] = (*QuoteBookingHandler)(nil)
