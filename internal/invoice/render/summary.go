package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	"github.com/smallbiznis/gstinvoice/internal/invoice/format"
)

const (
	SectionSeller   = "Seller Details"
	SectionBilling  = "Billing Details"
	SectionShipping = "Shipping Details"
	SectionItems    = "Items"
	SectionBank     = "Bank Details"
	TotalLabel      = "Total Invoice Amount"
)

var summaryColumns = []string{
	"Description", "HSN Code", "Rate", "Quantity", "Unit", "CGST", "SGST",
	"Total Amount", "CGST Amount", "SGST Amount", "Final Amount",
}

// BuildSummary produces the sectioned, non-paginated view of a computed invoice.
func BuildSummary(inv domain.Invoice, s Settings) domain.Summary {
	opts := s.Format

	rows := make([][]string, 0, len(inv.Items))
	for _, item := range inv.Items {
		rows = append(rows, []string{
			oneLine(item.Description),
			oneLine(item.Code),
			format.Fixed(item.Rate, opts),
			format.Quantity(item.Quantity),
			oneLine(item.Unit),
			format.Fixed(item.CGSTPercent, opts),
			format.Fixed(item.SGSTPercent, opts),
			format.Fixed(item.LineTotal, opts),
			format.Fixed(item.CGSTAmount, opts),
			format.Fixed(item.SGSTAmount, opts),
			format.Fixed(item.FinalAmount, opts),
		})
	}

	return domain.Summary{
		Title:     s.Title,
		Seller:    domain.Section{Title: SectionSeller, Fields: partyFields(inv.Seller, true)},
		BilledTo:  domain.Section{Title: SectionBilling, Fields: partyFields(inv.BilledTo, true)},
		ShippedTo: domain.Section{Title: SectionShipping, Fields: partyFields(inv.ShippedTo, false)},
		Items: domain.Table{
			Columns: append([]string(nil), summaryColumns...),
			Rows:    rows,
		},
		Bank:       domain.Section{Title: SectionBank, Fields: bankFields(inv.Bank)},
		TotalLabel: TotalLabel,
		Total:      format.Money(inv.GrandTotal, opts),
		GrandTotal: inv.GrandTotal,
	}
}

// WriteSummaryText prints a summary as plain text with an aligned item table.
func WriteSummaryText(w io.Writer, s domain.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", s.Title, strings.Repeat("=", len([]rune(s.Title))))
	for _, section := range []domain.Section{s.Seller, s.BilledTo, s.ShippedTo} {
		writeSection(&b, section)
	}

	fmt.Fprintf(&b, "%s\n", SectionItems)
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(s.Items.Columns, "\t"))
	for _, row := range s.Items.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	b.WriteString("\n")

	writeSection(&b, s.Bank)
	fmt.Fprintf(&b, "%s: %s\n", s.TotalLabel, s.Total)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, section domain.Section) {
	fmt.Fprintf(b, "%s\n", section.Title)
	for _, f := range section.Fields {
		fmt.Fprintf(b, "  %s: %s\n", f.Label, f.Value)
	}
	b.WriteString("\n")
}

func partyFields(p domain.PartyDetails, withTaxNumber bool) []domain.Field {
	fields := []domain.Field{{Label: "Name", Value: oneLine(p.Name)}}
	if withTaxNumber {
		fields = append(fields, domain.Field{Label: "GSTIN", Value: oneLine(p.TaxNumber)})
	}
	return append(fields, domain.Field{Label: "Address", Value: oneLine(p.Address)})
}

func bankFields(b domain.BankDetails) []domain.Field {
	return []domain.Field{
		{Label: "Bank Name", Value: oneLine(b.BankName)},
		{Label: "Account Number", Value: oneLine(b.AccountNumber)},
		{Label: "IFSC Code", Value: oneLine(b.RoutingCode)},
	}
}

// oneLine collapses line breaks and runs of spaces; every field occupies a
// single line in both views.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
