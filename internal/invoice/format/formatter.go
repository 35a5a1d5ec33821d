package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Options controls how amounts are printed. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	Symbol         string
	Places         int32
	GroupSeparator string
	DecimalPoint   string
}

// DefaultOptions is the fixed Indian rupee presentation: ₹, two places, "," groups.
func DefaultOptions() Options {
	return Options{
		Symbol:         "₹",
		Places:         2,
		GroupSeparator: ",",
		DecimalPoint:   ".",
	}
}

// Money formats an amount with the currency symbol and thousands separators,
// e.g. 1234567.891 -> "₹1,234,567.89". Negative amounts get a leading "-".
//
// Rounding only affects the returned string, never the amount.
func Money(amount decimal.Decimal, opts Options) string {
	return signOf(amount, opts) + opts.Symbol + grouped(amount.Abs(), opts)
}

// Fixed formats a value to the configured number of places without grouping,
// e.g. 18 -> "18.00". Used for table cells.
func Fixed(value decimal.Decimal, opts Options) string {
	out := value.StringFixed(opts.Places)
	if opts.DecimalPoint != "" && opts.DecimalPoint != "." {
		out = strings.Replace(out, ".", opts.DecimalPoint, 1)
	}
	return out
}

// Quantity prints a quantity as given: integers without a fraction,
// fractional values without trailing zeros.
func Quantity(value decimal.Decimal) string {
	return value.String()
}

func signOf(amount decimal.Decimal, opts Options) string {
	if amount.Round(opts.Places).IsNegative() {
		return "-"
	}
	return ""
}

func grouped(abs decimal.Decimal, opts Options) string {
	fixed := abs.StringFixed(opts.Places)
	intPart, frac, hasFrac := strings.Cut(fixed, ".")

	var b strings.Builder
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(opts.GroupSeparator)
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		point := opts.DecimalPoint
		if point == "" {
			point = "."
		}
		b.WriteString(point)
		b.WriteString(frac)
	}
	return b.String()
}
