package server

import (
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
)

type lineItemRequest struct {
	Description string          `json:"description"`
	HSNCode     string          `json:"hsn_code"`
	Rate        decimal.Decimal `json:"rate" binding:"dnum,dgte=0,dlte=999999999999"`
	Quantity    decimal.Decimal `json:"quantity" binding:"dnum,dgt=0,dlte=999999999999"`
	Unit        string          `json:"unit"`
	CGSTPercent decimal.Decimal `json:"cgst_percent" binding:"dnum,dgte=0,dlte=100"`
	SGSTPercent decimal.Decimal `json:"sgst_percent" binding:"dnum,dgte=0,dlte=100"`
}

func (r lineItemRequest) toDomain() invoicedomain.LineItem {
	return invoicedomain.LineItem{
		Description: r.Description,
		Code:        r.HSNCode,
		Rate:        r.Rate,
		Quantity:    r.Quantity,
		Unit:        r.Unit,
		CGSTPercent: r.CGSTPercent,
		SGSTPercent: r.SGSTPercent,
	}
}

type generateInvoiceRequest struct {
	invoicedomain.Parties
	Items []lineItemRequest `json:"items" binding:"dive"`
}

func (r generateInvoiceRequest) toDomain(mode invoicedomain.Mode) invoicedomain.GenerateRequest {
	items := make([]invoicedomain.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.toDomain())
	}
	return invoicedomain.GenerateRequest{
		Parties: r.Parties,
		Items:   items,
		Mode:    mode,
	}
}

type addItemResponse struct {
	Key int64 `json:"key"`
}
