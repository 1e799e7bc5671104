package money

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// IDR is the only currency the booking flow prices in.
const IDR = "IDR"

var (
	ErrZeroDenominator = errors.New("money: zero denominator")
	ErrOverflow        = errors.New("money: amount out of range")
)

// Money keeps amounts in whole rupiah; there is no fractional subunit.
type Money struct {
	Amount   int64
	Currency string
}

// Rupiah is shorthand for an IDR amount.
func Rupiah(amount int64) Money {
	return Money{Amount: amount, Currency: IDR}
}

// FloorPercent returns floor(amount * basisPoints / 10000) for non-negative
// amounts, clamped to the int64 range.
func (m Money) FloorPercent(basisPoints int64) Money {
	n := new(big.Int).Mul(big.NewInt(m.Amount), big.NewInt(basisPoints))
	n.Quo(n, big.NewInt(10000))
	return Money{Amount: clamp(n), Currency: m.Currency}
}

// String renders the amount the way Indonesian locales do, e.g. "Rp3.300.000".
func (m Money) String() string {
	amount := m.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	prefix := "Rp"
	if m.Currency != "" && m.Currency != IDR {
		prefix = m.Currency + " "
	}
	return sign + prefix + b.String()
}

// Scale returns amount*num/den rounded half-up, ties away from zero. The
// product is carried exactly; a result outside int64 is clamped to the nearest
// bound and reported as ErrOverflow.
func Scale(amount, num, den int64) (int64, error) {
	if den == 0 {
		return 0, ErrZeroDenominator
	}
	n := new(big.Int).Mul(big.NewInt(amount), big.NewInt(num))
	d := big.NewInt(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	// (2|n| + d) / 2d, truncated, then the sign is restored.
	neg := n.Sign() < 0
	n.Abs(n)
	n.Lsh(n, 1).Add(n, d)
	n.Quo(n, d.Lsh(d, 1))
	if neg {
		n.Neg(n)
	}
	if !n.IsInt64() {
		return clamp(n), ErrOverflow
	}
	return n.Int64(), nil
}

func clamp(n *big.Int) int64 {
	switch {
	case n.IsInt64():
		return n.Int64()
	case n.Sign() < 0:
		return math.MinInt64
	default:
		return math.MaxInt64
	}
}
