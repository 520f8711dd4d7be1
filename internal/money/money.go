// Package money holds the cent-precision arithmetic shared by the ledger,
// the profile and the aggregation pipeline.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when user input is not a finite number or
// violates a sign constraint.
var ErrInvalidAmount = errors.New("invalid amount")

var half = decimal.New(5, -1)

// MaxAmount bounds every amount the ledger accepts.
var MaxAmount = decimal.New(1, 15)

// maxScale caps the digits after the decimal point before rounding.
const maxScale = 20

func init() {
	// Persisted records carry amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundCents rounds d to the nearest cent, half-up on the cent boundary.
// Rounding an already rounded value returns it unchanged.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// CheckRange rejects amounts whose magnitude is MaxAmount or more, or that
// carry more than maxScale decimal places. Call it before rounding.
func CheckRange(d decimal.Decimal) error {
	if d.Exponent() < -maxScale {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, maxScale)
	}
	if d.Exponent() > 15 || d.Abs().GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("%w: magnitude must be below %s", ErrInvalidAmount, MaxAmount)
	}
	return nil
}

// ParseAmount parses a signed amount and rounds it to cents.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if err := CheckRange(d); err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, err)
	}
	return RoundCents(d), nil
}

// ParseNonNegative parses an amount that must be zero or greater.
func ParseNonNegative(raw string) (decimal.Decimal, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, raw)
	}
	return d, nil
}

// ParsePositive parses an amount that must be strictly positive after
// rounding to cents.
func ParsePositive(raw string) (decimal.Decimal, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, raw)
	}
	return d, nil
}

// Sum adds values and rounds the result once.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return RoundCents(total)
}

// Float returns d as a float64 for chart scaling and ratios.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
