package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/money"
)

func TestComputePriceMonthly(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		wantDiscount int64
		wantTotal    int64
		wantApplied  bool
	}{
		{name: "no code", code: "", wantDiscount: 0, wantTotal: 3_300_000},
		{name: "exact code", code: "PROMO10", wantDiscount: 300_000, wantTotal: 3_000_000, wantApplied: true},
		{name: "lower case code", code: "promo10", wantDiscount: 300_000, wantTotal: 3_000_000, wantApplied: true},
		{name: "padded code", code: " PROMO10 ", wantDiscount: 0, wantTotal: 3_300_000},
		{name: "unknown code", code: "PROMO20", wantDiscount: 0, wantTotal: 3_300_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePrice(money.Rupiah(3_000_000), ruko.RentalMonthly, 1, tt.code)
			assert.Equal(t, money.Rupiah(3_000_000), got.Subtotal)
			assert.Equal(t, money.Rupiah(300_000), got.Tax)
			assert.Equal(t, money.Rupiah(tt.wantDiscount), got.Discount)
			assert.Equal(t, money.Rupiah(tt.wantTotal), got.Total)
			assert.Equal(t, tt.wantApplied, got.DiscountApplied)
		})
	}
}

func TestComputePriceYearlyUsesFractionalPeriods(t *testing.T) {
	got := ComputePrice(money.Rupiah(60_000_000), ruko.RentalYearly, 18, "")
	assert.Equal(t, money.Rupiah(90_000_000), got.Subtotal)
	assert.Equal(t, money.Rupiah(9_000_000), got.Tax)
	assert.Equal(t, money.Rupiah(99_000_000), got.Total)
	assert.InDelta(t, 1.5, got.Periods(), 1e-9)
}

func TestComputePriceRoundsTotalOnce(t *testing.T) {
	// 1_000_001/12 = 83_333.41..; tax 8_333.34..; exact total 91_666.76..
	got := ComputePrice(money.Rupiah(1_000_001), ruko.RentalYearly, 1, "")
	assert.Equal(t, int64(83_333), got.Subtotal.Amount)
	assert.Equal(t, int64(8_333), got.Tax.Amount)
	assert.Equal(t, int64(91_667), got.Total.Amount)
}

func TestComputePriceZeroInputs(t *testing.T) {
	assert.Zero(t, ComputePrice(money.Rupiah(0), ruko.RentalMonthly, 6, PromoCode).Total.Amount)
	assert.Zero(t, ComputePrice(money.Rupiah(4_000_000), ruko.RentalMonthly, 0, "").Total.Amount)
	assert.Equal(t, 0, ComputePrice(money.Rupiah(4_000_000), ruko.RentalMonthly, -3, "").Months)
}

func TestComputePriceLargeAmounts(t *testing.T) {
	// price*months*110 is past int64 even though the total itself fits.
	got := ComputePrice(money.Rupiah(1_000_000_000_000_000), ruko.RentalMonthly, 100, "")
	assert.Equal(t, int64(100_000_000_000_000_000), got.Subtotal.Amount)
	assert.Equal(t, int64(10_000_000_000_000_000), got.Tax.Amount)
	assert.Equal(t, int64(110_000_000_000_000_000), got.Total.Amount)
}

func TestComputePriceIsIdempotent(t *testing.T) {
	a := ComputePrice(money.Rupiah(7_250_000), ruko.RentalYearly, 25, "promo10")
	b := ComputePrice(money.Rupiah(7_250_000), ruko.RentalYearly, 25, "promo10")
	assert.Equal(t, a, b)
}

func TestQuoteEndToEnd(t *testing.T) {
	r := ruko.Ruko{ID: "r-1", Price: money.Rupiah(5_000_000), RentalType: ruko.RentalMonthly}
	start := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)

	got := Quote(r, start, end, "PROMO10")
	assert.Equal(t, 1, got.Months)
	assert.Equal(t, money.Rupiah(5_000_000), got.Subtotal)
	assert.Equal(t, money.Rupiah(500_000), got.Tax)
	assert.Equal(t, money.Rupiah(500_000), got.Discount)
	assert.Equal(t, money.Rupiah(5_000_000), got.Total)
}

func TestQuoteWithoutDatesIsZero(t *testing.T) {
	r := ruko.Ruko{Price: money.Rupiah(5_000_000), RentalType: ruko.RentalMonthly}
	got := Quote(r, time.Time{}, time.Time{}, "")
	assert.Equal(t, 0, got.Months)
	assert.Zero(t, got.Total.Amount)
}
