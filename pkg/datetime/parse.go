// Package datetime provides calendar date utility functions.
package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/loss-mitigation/pkg/constants"
)

const (
	// DateLayout is the format expected in borrower records and request bodies.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a calendar date. RFC 3339 timestamps are accepted and
// truncated to their date.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, trimmed); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected %s", value, DateLayout)
	}
	return CalendarDate(t), nil
}

// CalendarDate drops the time of day and location from t.
func CalendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the whole-month difference from start to end based on
// calendar months only; the day of month is ignored. The result is negative
// when end falls in an earlier month than start.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*constants.MonthsPerYear + int(end.Month()) - int(start.Month())
}

// Format renders t in DateLayout, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
