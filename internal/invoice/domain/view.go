package domain

import "github.com/shopspring/decimal"

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJSON = "application/json"

	DefaultFilename = "invoice.pdf"
)

// Field is one label/value line of a summary section.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled list of fields, e.g. "Seller Details".
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Table is the tabular item listing of a summary.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Summary is the interactive, non-paginated rendering of an invoice.
type Summary struct {
	Title      string          `json:"title"`
	Seller     Section         `json:"seller"`
	BilledTo   Section         `json:"billed_to"`
	ShippedTo  Section         `json:"shipped_to"`
	Items      Table           `json:"items"`
	Bank       Section         `json:"bank"`
	TotalLabel string          `json:"total_label"`
	Total      string          `json:"total"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// Artifact is the output of one render call. Exactly one of Summary or
// Document is set, depending on Mode.
type Artifact struct {
	Mode        Mode
	Summary     *Summary
	Document    []byte
	Pages       int
	ContentType string
	Filename    string
}
