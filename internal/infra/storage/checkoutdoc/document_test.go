package checkoutdoc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "rukorent/internal/domain/booking"
	"rukorent/internal/domain/checkout"
	"rukorent/internal/domain/payment"
	"rukorent/internal/domain/pricing"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/money"
)

func TestDocumentPreservesCheckout(t *testing.T) {
	r := ruko.Ruko{ID: "r-1", Name: "Ruko Cempaka", Price: money.Rupiah(60_000_000), RentalType: ruko.RentalYearly, Location: "Jl. Asia Afrika, Bandung"}
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	co := checkout.New(checkout.CreateParams{
		BookingID: "bk-7",
		TenantID:  "tenant-7",
		Ruko:      r,
		Draft: domainbooking.Draft{
			RukoID:        r.ID,
			Start:         start,
			End:           end,
			DiscountCode:  "PROMO10",
			Tenant:        domainbooking.Tenant{FullName: "Sari", Email: "sari@example.com", Phone: "0812"},
			PaymentMethod: domainbooking.PaymentOnline,
		},
		Price: pricing.Quote(r, start, end, "PROMO10"),
		Now:   start,
	})
	ins, err := payment.NewInstruction("ovo", "0812", co.Quote())
	require.NoError(t, err)
	require.NoError(t, co.Instruct(ins, start.Add(time.Hour)))

	expires := start.Add(2 * time.Hour)
	doc := FromDomain(co, expires)
	assert.Equal(t, "bk-7", doc.BookingID)
	assert.Equal(t, expires, doc.ExpiresAt)

	back := doc.ToDomain()
	assert.Equal(t, co.Ruko, back.Ruko)
	assert.Equal(t, co.Draft, back.Draft)
	assert.Equal(t, co.Price, back.Price)
	assert.Equal(t, co.Status, back.Status)
	require.NotNil(t, back.Payment)
	assert.Equal(t, *co.Payment, *back.Payment)
	assert.Empty(t, back.PendingEvents())
}
