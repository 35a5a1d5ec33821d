package service

import (
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	taxdomain "github.com/smallbiznis/gstinvoice/internal/tax/domain"
)

type calculator struct{}

func NewCalculator() taxdomain.Calculator {
	return calculator{}
}

func (calculator) ComputeTotals(items []invoicedomain.LineItem) ([]invoicedomain.LineItem, decimal.Decimal) {
	return ComputeTotals(items)
}

// ComputeTotals returns a copy of items with every derived field populated
// and the grand total of their final amounts.
//
// It is pure and total: zero or negative inputs produce zero or negative
// results, nothing is rounded, and the input slice is left untouched.
func ComputeTotals(items []invoicedomain.LineItem) ([]invoicedomain.LineItem, decimal.Decimal) {
	out := make([]invoicedomain.LineItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		line := ComputeLine(item)
		total = total.Add(line.FinalAmount)
		out = append(out, line)
	}
	return out, total
}

// ComputeLine recomputes the derived fields of a single item from its inputs.
func ComputeLine(item invoicedomain.LineItem) invoicedomain.LineItem {
	line := item.Inputs()
	line.LineTotal = line.Rate.Mul(line.Quantity)
	line.CGSTAmount = percentOf(line.LineTotal, line.CGSTPercent)
	line.SGSTAmount = percentOf(line.LineTotal, line.SGSTPercent)
	line.FinalAmount = line.LineTotal.Add(line.CGSTAmount).Add(line.SGSTAmount)
	return line
}

// Shift(-2) divides by 100 exactly; Div would cap the scale.
func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Shift(-2)
}
