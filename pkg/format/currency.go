// Package format renders amounts and ratios for people.
package format

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency returns a currency string with a dollar sign and thousands
// separators (e.g., "-$1,234.56").
func Currency(amount decimal.Decimal) string {
	formatted := NumericCurrency(amount.Abs())
	if amount.Round(2).IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with
// separators (e.g., "-1,234.56").
func NumericCurrency(amount decimal.Decimal) string {
	return Grouped(amount, 2)
}

// Grouped renders amount rounded half away from zero to places decimals,
// with thousands separators on the integer digits. Digits are taken from the
// decimal itself; only the integer part is grouped by the printer.
func Grouped(amount decimal.Decimal, places int32) string {
	rounded := amount.Round(places)
	intPart, frac, _ := strings.Cut(rounded.Abs().StringFixed(places), ".")

	var grouped string
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		grouped = message.NewPrinter(language.English).Sprintf("%d", n)
	} else {
		grouped = groupThousands(intPart)
	}

	out := grouped
	if frac != "" {
		out += "." + frac
	}
	if rounded.IsNegative() {
		out = "-" + out
	}
	return out
}

// groupThousands inserts separators into a run of digits too long for int64.
func groupThousands(digits string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Percent renders a fraction as a percentage (0.4 -> "40.00%").
func Percent(ratio decimal.Decimal) string {
	return ratio.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
