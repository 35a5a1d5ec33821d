package domain

import (
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
)

// Calculator populates the derived tax fields of line items.
type Calculator interface {
	ComputeTotals(items []invoicedomain.LineItem) ([]invoicedomain.LineItem, decimal.Decimal)
}
