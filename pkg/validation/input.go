package validation

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
)

// Field identifies an input by its wire name and the label used in messages.
type Field struct {
	Name  string
	Label string
}

// Positive requires value > 0.
func Positive(f Field, value decimal.Decimal) error {
	if !value.IsPositive() {
		return calcerr.Newf(calcerr.CodeNonPositive, f.Name, "%s must be greater than zero", f.Label)
	}
	return nil
}

// NonNegative requires value >= 0.
func NonNegative(f Field, value decimal.Decimal) error {
	if value.IsNegative() {
		return calcerr.Newf(calcerr.CodeNegativeAmount, f.Name, "%s cannot be negative", f.Label)
	}
	return nil
}

// Fraction requires value in [0, 1].
func Fraction(f Field, value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(1)) {
		return calcerr.Newf(calcerr.CodeOutOfRange, f.Name, "%s must be between 0 and 1", f.Label)
	}
	return nil
}

// PositiveFraction requires value in (0, 1].
func PositiveFraction(f Field, value decimal.Decimal) error {
	if !value.IsPositive() || value.GreaterThan(decimal.NewFromInt(1)) {
		return calcerr.Newf(calcerr.CodeOutOfRange, f.Name, "%s must be greater than 0 and at most 1", f.Label)
	}
	return nil
}

// PositiveInt requires value > 0.
func PositiveInt(f Field, value int) error {
	if value <= 0 {
		return calcerr.Newf(calcerr.CodeNonPositive, f.Name, "%s must be greater than zero", f.Label)
	}
	return nil
}

// NonNegativeInt requires value >= 0.
func NonNegativeInt(f Field, value int) error {
	if value < 0 {
		return calcerr.Newf(calcerr.CodeNegativeAmount, f.Name, "%s cannot be negative", f.Label)
	}
	return nil
}

// RequiredDate rejects the zero time.
func RequiredDate(f Field, value time.Time) error {
	if value.IsZero() {
		return calcerr.Newf(calcerr.CodeMissingField, f.Name, "%s is required", f.Label)
	}
	return nil
}

// NotBefore requires later to be on or after earlier.
func NotBefore(later Field, laterValue time.Time, earlier Field, earlierValue time.Time) error {
	if laterValue.Before(earlierValue) {
		return calcerr.Newf(calcerr.CodeInvalidDate, later.Name, "%s cannot be before %s",
			later.Label, strings.ToLower(earlier.Label[:1])+earlier.Label[1:])
	}
	return nil
}

// OneOf requires value to be one of allowed.
func OneOf(f Field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return calcerr.Newf(calcerr.CodeInvalidEnum, f.Name, "%s must be one of %s, got %q",
		f.Label, strings.Join(allowed, ", "), value)
}

// First returns the first non-nil error. Calculators list their preconditions
// in the order they should be reported.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
