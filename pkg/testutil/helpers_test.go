package testutil

import (
	"testing"
)

func TestDec(t *testing.T) {
	if got := Dec("12.50"); got.String() != "12.5" {
		t.Errorf("Dec(12.50) = %s, expected 12.5", got)
	}
	if got := DecPtr("0.31"); got == nil || got.String() != "0.31" {
		t.Errorf("DecPtr(0.31) = %v, expected 0.31", got)
	}
}

func TestDate(t *testing.T) {
	d := Date("2024-02-29")
	if d.Year() != 2024 || d.Month() != 2 || d.Day() != 29 {
		t.Errorf("Date(2024-02-29) = %v", d)
	}
}

func TestAssertDecimal(t *testing.T) {
	AssertDecimal(t, "1.50", Dec("1.5"))
	AssertDecimal(t, "0", Dec("0.00"), "zero")
}
