package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rukorent/internal/domain/payment"
	"rukorent/internal/domain/pricing"
	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/money"
)

func TestCheckoutLifecycle(t *testing.T) {
	now := time.Date(2025, time.January, 5, 9, 0, 0, 0, time.UTC)
	c := New(CreateParams{
		BookingID: "bk-1",
		TenantID:  "tenant-1",
		Ruko:      ruko.Ruko{ID: "r-1", Name: "Ruko Mawar"},
		Price:     pricing.ComputePrice(money.Rupiah(3_000_000), ruko.RentalMonthly, 1, ""),
		Now:       now,
	})
	assert.Equal(t, StatusAwaitingMethod, c.Status)
	require.Len(t, c.PendingEvents(), 1)
	assert.Equal(t, "booking.submitted", c.PendingEvents()[0].EventName())
	c.ClearEvents()
	assert.NoError(t, c.EnsureOwner("tenant-1"))
	assert.ErrorIs(t, c.EnsureOwner("tenant-2"), ErrNotOwner)

	q := c.Quote()
	assert.Equal(t, money.Rupiah(3_349_500), q.TotalWithFee)

	ins, err := payment.NewInstruction("gopay", "0812", q)
	require.NoError(t, err)
	later := now.Add(time.Minute)
	require.NoError(t, c.Instruct(ins, later))
	assert.Equal(t, StatusAwaitingPayment, c.Status)
	assert.Equal(t, later, c.UpdatedAt)
	require.NotNil(t, c.Payment)
	assert.Equal(t, "gopay", c.Payment.Method.ID)
	require.Len(t, c.PendingEvents(), 1)
	assert.Equal(t, "payment.instructed", c.PendingEvents()[0].EventName())

	c.Status = "paid"
	assert.ErrorIs(t, c.Instruct(ins, later), ErrInvalidState)
}
