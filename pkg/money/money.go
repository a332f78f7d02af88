// Package money provides decimal helpers for dollar amounts and ratios.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/constants"
)

var hundred = decimal.NewFromInt(100)

// Cents rounds a dollar amount half-up to two decimals, i.e. to represent real
// currency.
func Cents(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.CurrencyPlaces)
}

// Ratio rounds a fraction to four decimals.
func Ratio(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.RatioPlaces)
}

// Percent converts a fraction to a two-decimal percentage (0.4 -> 40.00).
func Percent(ratio decimal.Decimal) decimal.Decimal {
	return ratio.Mul(hundred).Round(constants.PercentPlaces)
}

// Divide returns numerator/denominator as a four-decimal ratio. Callers are
// expected to have validated the denominator.
func Divide(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return Ratio(numerator.Div(denominator))
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Dollars converts a whole-dollar constant to a decimal.
func Dollars(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

// MustParse parses a decimal constant and panics on error. It is intended for
// package-level thresholds that are known to be valid.
func MustParse(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// OrDefault returns the value pointed to, or def when the pointer is nil.
func OrDefault(val *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if val == nil {
		return def
	}
	return *val
}
