package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstinvoice/internal/config"
	"github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	"github.com/smallbiznis/gstinvoice/internal/providers/pdf"
	pdfmock "github.com/smallbiznis/gstinvoice/internal/providers/pdf/mock"
	taxservice "github.com/smallbiznis/gstinvoice/internal/tax/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleParties() domain.Parties {
	return domain.Parties{
		Seller:    domain.PartyDetails{Name: "Acme Traders", TaxNumber: "27AAAPL1234C1ZV", Address: "12 MG Road\nPune"},
		BilledTo:  domain.PartyDetails{Name: "Globex Retail", TaxNumber: "29AABCG5678D1Z2", Address: "4 Brigade Road, Bengaluru"},
		ShippedTo: domain.PartyDetails{Name: "Globex Warehouse", Address: "Plot 9, Hosur"},
		Bank:      domain.BankDetails{BankName: "State Bank", AccountNumber: "001234567890", RoutingCode: "SBIN0000123"},
	}
}

func computed(n int) domain.Invoice {
	items := make([]domain.LineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.LineItem{
			Description: fmt.Sprintf("Item %d", i+1),
			Code:        "8471",
			Rate:        decimal.NewFromInt(100),
			Quantity:    decimal.NewFromInt(2),
			Unit:        "pcs",
			CGSTPercent: decimal.NewFromInt(9),
			SGSTPercent: decimal.NewFromInt(9),
		})
	}
	lines, total := taxservice.ComputeTotals(items)
	return domain.Invoice{Parties: sampleParties(), Items: lines, GrandTotal: total}
}

func findElement(page pdf.Page, text string) (pdf.Element, bool) {
	for _, el := range page.Elements {
		if el.Text == text {
			return el, true
		}
	}
	return pdf.Element{}, false
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(computed(1), DefaultSettings())

	assert.Equal(t, "GST Invoice", summary.Title)
	assert.Equal(t, SectionSeller, summary.Seller.Title)
	assert.Equal(t, domain.Field{Label: "Address", Value: "12 MG Road Pune"}, summary.Seller.Fields[2])
	assert.Len(t, summary.ShippedTo.Fields, 2)
	require.Len(t, summary.Items.Rows, 1)
	assert.Equal(t,
		[]string{"Item 1", "8471", "100.00", "2", "pcs", "9.00", "9.00", "200.00", "18.00", "18.00", "236.00"},
		summary.Items.Rows[0])
	assert.Equal(t, "IFSC Code", summary.Bank.Fields[2].Label)
	assert.Equal(t, TotalLabel, summary.TotalLabel)
	assert.Equal(t, "₹236.00", summary.Total)
	assert.True(t, summary.GrandTotal.Equal(decimal.NewFromInt(236)))
}

func TestBuildSummary_ZeroItems(t *testing.T) {
	summary := BuildSummary(computed(0), DefaultSettings())

	assert.NotNil(t, summary.Items.Rows)
	assert.Empty(t, summary.Items.Rows)
	assert.Equal(t, "₹0.00", summary.Total)
}

func TestBuildLayout_SinglePage(t *testing.T) {
	doc := BuildLayout(computed(2), DefaultSettings())

	require.Len(t, doc.Pages, 1)
	page := doc.Pages[0]

	title, ok := findElement(page, "GST Invoice")
	require.True(t, ok)
	assert.Equal(t, 15.0, title.Y)

	seller, ok := findElement(page, SectionSeller)
	require.True(t, ok)
	billing, ok := findElement(page, SectionBilling)
	require.True(t, ok)
	assert.Equal(t, seller.Y, billing.Y)
	assert.Less(t, seller.X, billing.X)

	rate, ok := findElement(page, "100.00")
	require.True(t, ok)
	assert.Equal(t, pdf.AlignRight, rate.Align)

	total, ok := findElement(page, "₹472.00")
	require.True(t, ok)
	label, ok := findElement(page, TotalLabel)
	require.True(t, ok)
	assert.Greater(t, total.Y, label.Y)

	bank, ok := findElement(page, SectionBank)
	require.True(t, ok)
	header, ok := findElement(page, "Final Amount")
	require.True(t, ok)
	assert.Greater(t, bank.Y, header.Y)
}

func TestBuildLayout_ZeroItems(t *testing.T) {
	doc := BuildLayout(computed(0), DefaultSettings())

	require.Len(t, doc.Pages, 1)
	_, ok := findElement(doc.Pages[0], "Description")
	assert.True(t, ok)
	_, ok = findElement(doc.Pages[0], "₹0.00")
	assert.True(t, ok)
}

func TestBuildLayout_ContinuesItemsAtSectionOffset(t *testing.T) {
	doc := BuildLayout(computed(75), DefaultSettings())

	require.GreaterOrEqual(t, len(doc.Pages), 3)

	first, ok := findElement(doc.Pages[0], "Description")
	require.True(t, ok)

	bottom := doc.PageHeight - doc.Margins.Bottom
	rows := 0
	for i, page := range doc.Pages {
		for _, el := range page.Elements {
			assert.LessOrEqual(t, el.Y+el.Height, bottom, "page %d element %q overflows", i+1, el.Text)
			if strings.HasPrefix(el.Text, "Item ") {
				rows++
			}
		}
	}
	assert.Equal(t, 75, rows)

	second, ok := findElement(doc.Pages[1], "Description")
	require.True(t, ok)
	assert.Equal(t, first.Y, second.Y)

	// first row on the continuation page sits right under the repeated header
	var firstRow pdf.Element
	for _, el := range doc.Pages[1].Elements {
		if strings.HasPrefix(el.Text, "Item ") {
			firstRow = el
			break
		}
	}
	assert.Equal(t, second.Y+DefaultSettings().Page.LineHeight, firstRow.Y)
	_, titleOnContinuation := findElement(doc.Pages[1], "GST Invoice")
	assert.False(t, titleOnContinuation)

	last := doc.Pages[len(doc.Pages)-1]
	_, ok = findElement(last, "₹17,700.00")
	assert.True(t, ok)
}

func TestBuildLayout_Deterministic(t *testing.T) {
	a := BuildLayout(computed(40), DefaultSettings())
	b := BuildLayout(computed(40), DefaultSettings())

	assert.Equal(t, a, b)
	assert.Equal(t, a.Text(), b.Text())
}

func TestRenderer_DocumentIsDeterministic(t *testing.T) {
	provider, err := pdf.New(pdf.Config{Engine: pdf.EngineFPDF})
	require.NoError(t, err)
	r := NewRenderer(provider, nil)

	first, err := r.Render(context.Background(), computed(3), domain.ModeDocument)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), computed(3), domain.ModeDocument)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first.Document, []byte("%PDF-")))
	assert.Equal(t, first.Document, second.Document)
	assert.Equal(t, domain.ContentTypePDF, first.ContentType)
	assert.Equal(t, domain.DefaultFilename, first.Filename)
	assert.Equal(t, 1, first.Pages)
	assert.Nil(t, first.Summary)
}

func TestRenderer_DocumentBytesStableAcrossPageCounts(t *testing.T) {
	provider, err := pdf.New(pdf.Config{})
	require.NoError(t, err)
	r := NewRenderer(provider, nil)

	for _, n := range []int{0, 1, 30, 31, 75, 200} {
		first, err := r.Render(context.Background(), computed(n), domain.ModeDocument)
		require.NoError(t, err)
		second, err := r.Render(context.Background(), computed(n), domain.ModeDocument)
		require.NoError(t, err)

		assert.Equal(t, first.Document, second.Document, "%d items", n)
	}
}

func TestRenderer_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := pdfmock.NewMockProvider(ctrl)
	r := NewRenderer(provider, StaticSettings(DefaultSettings()))

	art, err := r.Render(context.Background(), computed(1), domain.ModeSummary)

	require.NoError(t, err)
	require.NotNil(t, art.Summary)
	assert.Equal(t, "₹236.00", art.Summary.Total)
	assert.Empty(t, art.Document)
	assert.Equal(t, domain.ContentTypeJSON, art.ContentType)
}

func TestRenderer_ProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := pdfmock.NewMockProvider(ctrl)
	boom := errors.New("boom")
	provider.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := NewRenderer(provider, nil).Render(context.Background(), computed(1), domain.ModeDocument)

	assert.ErrorIs(t, err, boom)
}

func TestRenderer_InvalidMode(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := NewRenderer(pdfmock.NewMockProvider(ctrl), nil)

	_, err := r.Render(context.Background(), computed(1), domain.Mode("html"))

	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestFilename(t *testing.T) {
	inv := computed(1)

	assert.Equal(t, "invoice.pdf", Filename(inv, config.FilenameStyleFixed))
	assert.Equal(t, "invoice-globex-retail.pdf", Filename(inv, config.FilenameStyleCustomer))

	inv.BilledTo.Name = "  "
	assert.Equal(t, "invoice.pdf", Filename(inv, config.FilenameStyleCustomer))
}

func TestWriteSummaryText(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, WriteSummaryText(&out, BuildSummary(computed(1), DefaultSettings())))

	text := out.String()
	assert.Contains(t, text, "GST Invoice\n===========")
	assert.Contains(t, text, "  GSTIN: 27AAAPL1234C1ZV")
	assert.Contains(t, text, "Final Amount")
	assert.Contains(t, text, "236.00")
	assert.True(t, strings.HasSuffix(text, "Total Invoice Amount: ₹236.00\n"))
}
