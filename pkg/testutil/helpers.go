// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/datetime"
)

// Dec parses a decimal literal and panics on error.
func Dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// DecPtr returns a pointer to a parsed decimal literal.
func DecPtr(value string) *decimal.Decimal {
	d := Dec(value)
	return &d
}

// Date parses a YYYY-MM-DD date and panics on error.
func Date(value string) time.Time {
	return datetime.MustParseTime(datetime.DateLayout, value)
}

// AssertDecimal fails the test when actual is not numerically equal to expected.
func AssertDecimal(t testing.TB, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !actual.Equal(Dec(expected)) {
		if len(msgAndArgs) > 0 {
			t.Errorf("%v: expected %s, got %s", msgAndArgs[0], expected, actual)
			return
		}
		t.Errorf("expected %s, got %s", expected, actual)
	}
}
