// Package domain holds the invoice aggregate and the views produced from it.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PartyDetails describes the seller, the billed-to and the shipped-to party.
// Fields are free-form text and are never validated here.
type PartyDetails struct {
	Name      string `json:"name"`
	TaxNumber string `json:"gstin,omitempty"`
	Address   string `json:"address"`
}

// BankDetails describes where the invoice should be paid.
type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	RoutingCode   string `json:"ifsc_code"`
}

// Parties groups the four fixed-shape records of an invoice.
type Parties struct {
	Seller    PartyDetails `json:"seller"`
	BilledTo  PartyDetails `json:"billed_to"`
	ShippedTo PartyDetails `json:"shipped_to"`
	Bank      BankDetails  `json:"bank"`
}

// LineItem is one billed row.
//
// LineTotal, CGSTAmount, SGSTAmount and FinalAmount are a cache of the
// tax formula. They are only written by the tax calculator; values coming
// from callers are discarded and recomputed.
type LineItem struct {
	Description string          `json:"description"`
	Code        string          `json:"hsn_code"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	CGSTPercent decimal.Decimal `json:"cgst_percent"`
	SGSTPercent decimal.Decimal `json:"sgst_percent"`

	LineTotal   decimal.Decimal `json:"line_total"`
	CGSTAmount  decimal.Decimal `json:"cgst_amount"`
	SGSTAmount  decimal.Decimal `json:"sgst_amount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}

// Inputs returns a copy of the item with the derived fields cleared.
func (i LineItem) Inputs() LineItem {
	return LineItem{
		Description: i.Description,
		Code:        i.Code,
		Rate:        i.Rate,
		Quantity:    i.Quantity,
		Unit:        i.Unit,
		CGSTPercent: i.CGSTPercent,
		SGSTPercent: i.SGSTPercent,
	}
}

// Invoice is the transient aggregate of one calculate-then-render cycle.
type Invoice struct {
	Parties
	Items      []LineItem      `json:"items"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Mode selects the artifact produced by rendering.
type Mode string

const (
	ModeSummary  Mode = "summary"
	ModeDocument Mode = "document"
)

// ParseMode maps user input onto a Mode. An empty value selects the document.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeSummary:
		return ModeSummary, nil
	case ModeDocument, "":
		return ModeDocument, nil
	default:
		return "", ErrInvalidMode
	}
}
