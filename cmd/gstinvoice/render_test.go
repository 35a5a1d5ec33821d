package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	"github.com/smallbiznis/gstinvoice/internal/invoice/render"
	invoiceservice "github.com/smallbiznis/gstinvoice/internal/invoice/service"
	"github.com/smallbiznis/gstinvoice/internal/providers/pdf"
	taxservice "github.com/smallbiznis/gstinvoice/internal/tax/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const invoiceYAML = `
seller:
  name: Acme Traders
  gstin: 27AAAPL1234C1ZV
  address: Pune
billed_to:
  name: Globex Retail
  address: Bengaluru
items:
  - description: Widget
    hsn_code: "8471"
    rate: 100
    quantity: 2
    unit: pcs
    cgst_percent: 9
    sgst_percent: "9"
    final_amount: 1
`

func testService(t *testing.T) invoicedomain.Service {
	t.Helper()
	provider, err := pdf.New(pdf.Config{Engine: pdf.EngineFPDF})
	require.NoError(t, err)
	return invoiceservice.NewService(invoiceservice.ServiceParam{
		Log:        zap.NewNop(),
		Calculator: taxservice.NewCalculator(),
		Renderer:   render.NewRenderer(provider, nil),
	})
}

func TestDecodeInvoiceFile(t *testing.T) {
	req, err := decodeInvoiceFile([]byte(invoiceYAML))

	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", req.Seller.Name)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "8471", req.Items[0].Code)
	assert.Equal(t, "9", req.Items[0].SGSTPercent.String())
	assert.True(t, req.Items[0].FinalAmount.IsZero())
}

func TestDecodeInvoiceFile_JSON(t *testing.T) {
	req, err := decodeInvoiceFile([]byte(`{"items": [{"rate": 10, "quantity": 1.5}]}`))

	require.NoError(t, err)
	assert.Equal(t, "1.5", req.Items[0].Quantity.String())
}

func TestDecodeInvoiceFile_NonNumeric(t *testing.T) {
	_, err := decodeInvoiceFile([]byte("items:\n  - rate: ten\n    quantity: 1\n"))

	assert.ErrorIs(t, err, invoicedomain.ErrInvalidNumericField)
}

func TestDecodeInvoiceFile_HugeExponent(t *testing.T) {
	_, err := decodeInvoiceFile([]byte("items:\n  - rate: \"1e1000000\"\n    quantity: 1\n"))

	assert.ErrorIs(t, err, invoicedomain.ErrInvalidNumericField)
	assert.ErrorIs(t, err, invoicedomain.ErrNumericOutOfRange)
	assert.Contains(t, err.Error(), "items[0].rate")
}

func TestDecodeInvoiceFile_InvalidYAML(t *testing.T) {
	_, err := decodeInvoiceFile([]byte("items: [\n"))

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRenderFile_Summary(t *testing.T) {
	var out bytes.Buffer

	err := renderFile(context.Background(), testService(t), []byte(invoiceYAML), invoicedomain.ModeSummary, "", &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Total Invoice Amount: ₹236.00")
}

func TestRenderFile_Document(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	var out bytes.Buffer

	err := renderFile(context.Background(), testService(t), []byte(invoiceYAML), invoicedomain.ModeDocument, path, &out)

	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, out.String(), "1 pages")
}

func TestRenderFile_Empty(t *testing.T) {
	err := renderFile(context.Background(), testService(t), []byte("seller:\n  name: Acme\n"), invoicedomain.ModeSummary, "", &bytes.Buffer{})

	assert.ErrorIs(t, err, invoicedomain.ErrEmptyInvoice)
}
