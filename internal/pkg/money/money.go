// Package money holds helpers for currency amounts, stored as exact decimals
// with two fractional digits.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept for an amount.
const Places int32 = 2

// ErrNotPositive is returned for zero or negative amounts.
var ErrNotPositive = errors.New("amount must be a positive number")

// Round rounds d half away from zero to Places digits.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Positive rounds d and rejects values that are not strictly positive
// after rounding.
func Positive(d decimal.Decimal) (decimal.Decimal, error) {
	d = Round(d)
	if !d.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}

	return d, nil
}

// Parse reads a decimal string such as "12.5". Surrounding spaces are ignored.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// Sum adds amounts, returning zero for an empty slice.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}

	return decimal.Sum(decimal.Zero, amounts...)
}

// Format renders d with exactly Places fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}
