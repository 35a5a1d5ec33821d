package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds on numeric inputs. They keep formatted amounts short; a decimal
// like 1e1000000 would otherwise print as a million digits.
const (
	MaxIntegerDigits  = 12
	MaxFractionDigits = 6
)

// CheckNumericRange rejects values with more than MaxIntegerDigits digits
// before the point or more than MaxFractionDigits significant digits after
// it. It inspects the coefficient and exponent only and never expands d.
func CheckNumericRange(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}

	exp := int64(d.Exponent())
	coef := strings.TrimPrefix(d.Coefficient().String(), "-")
	if int64(len(coef))+exp > MaxIntegerDigits {
		return fmt.Errorf("%w: more than %d integer digits", ErrNumericOutOfRange, MaxIntegerDigits)
	}

	trailing := int64(len(coef) - len(strings.TrimRight(coef, "0")))
	if fraction := -exp - trailing; fraction > MaxFractionDigits {
		return fmt.Errorf("%w: more than %d decimal places", ErrNumericOutOfRange, MaxFractionDigits)
	}
	return nil
}

// CheckItemRange applies CheckNumericRange to every numeric input of item
// and names the first offending field.
func CheckItemRange(item LineItem) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"rate", item.Rate},
		{"quantity", item.Quantity},
		{"cgst_percent", item.CGSTPercent},
		{"sgst_percent", item.SGSTPercent},
	}
	for _, f := range fields {
		if err := CheckNumericRange(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}
