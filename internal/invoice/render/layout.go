package render

import (
	"github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	"github.com/smallbiznis/gstinvoice/internal/invoice/format"
	"github.com/smallbiznis/gstinvoice/internal/providers/pdf"
)

const creator = "gstinvoice"

type column struct {
	title string
	width float64 // share of a 180mm content width
	align pdf.Align
}

var itemColumns = []column{
	{title: "Description", width: 44, align: pdf.AlignLeft},
	{title: "HSN Code", width: 20, align: pdf.AlignLeft},
	{title: "Rate", width: 20, align: pdf.AlignRight},
	{title: "Quantity", width: 16, align: pdf.AlignRight},
	{title: "Unit", width: 14, align: pdf.AlignLeft},
	{title: "CGST%", width: 16, align: pdf.AlignRight},
	{title: "SGST%", width: 16, align: pdf.AlignRight},
	{title: "Final Amount", width: 34, align: pdf.AlignRight},
}

const columnUnits = 180.0

// layout places elements top to bottom and opens pages as needed.
type layout struct {
	s      Settings
	doc    pdf.Document
	y      float64
	bottom float64
}

func newLayout(s Settings) *layout {
	p := s.Page
	l := &layout{
		s: s,
		doc: pdf.Document{
			Title:      s.Title,
			Author:     s.Author,
			Creator:    creator,
			CreatedAt:  s.CreatedAt,
			PageWidth:  p.Width,
			PageHeight: p.Height,
			Margins: pdf.Margins{
				Left:   p.MarginLeft,
				Top:    p.MarginTop,
				Right:  p.MarginRight,
				Bottom: p.MarginBottom,
			},
		},
		// one line is kept free above the bottom margin for the page footer
		bottom: p.Height - p.MarginBottom - p.LineHeight,
	}
	l.newPage(p.MarginTop)
	return l
}

func (l *layout) newPage(y float64) {
	l.doc.Pages = append(l.doc.Pages, pdf.Page{})
	l.y = y
}

func (l *layout) fits(height float64) bool {
	return l.y+height <= l.bottom
}

func (l *layout) put(x, width float64, text string, size float64, bold bool, align pdf.Align) {
	page := &l.doc.Pages[len(l.doc.Pages)-1]
	page.Elements = append(page.Elements, pdf.Element{
		X:      x,
		Y:      l.y,
		Width:  width,
		Height: l.s.Page.LineHeight,
		Text:   text,
		Size:   size,
		Bold:   bold,
		Align:  align,
	})
}

// section writes a heading and one "Label: value" line per field starting at
// the current offset, without advancing it. It returns the height used.
func (l *layout) section(x, width float64, sec domain.Section) float64 {
	lh := l.s.Page.LineHeight
	start := l.y
	l.put(x, width, sec.Title, l.s.Fonts.Heading, true, pdf.AlignLeft)
	for _, f := range sec.Fields {
		l.y += lh
		l.put(x, width, f.Label+": "+f.Value, l.s.Fonts.Body, false, pdf.AlignLeft)
	}
	used := l.y - start + lh
	l.y = start
	return used
}

func (l *layout) itemHeader(xs, widths []float64) {
	for i, c := range itemColumns {
		l.put(xs[i], widths[i], c.title, l.s.Fonts.Body, true, c.align)
	}
	l.y += l.s.Page.LineHeight
}

// BuildLayout lays out a computed invoice as a paginated document: title,
// seller and billed-to side by side, shipping, the item table, bank details
// and the grand total. Item rows that do not fit on a page continue on a new
// page at the same vertical offset the item table started at, below a
// repeated column header.
func BuildLayout(inv domain.Invoice, s Settings) pdf.Document {
	summary := BuildSummary(inv, s)
	p := s.Page
	lh := p.LineHeight
	left := p.MarginLeft
	width := p.Width - p.MarginLeft - p.MarginRight
	half := width / 2

	l := newLayout(s)

	l.put(left, width, s.Title, s.Fonts.Title, true, pdf.AlignLeft)
	l.y += 2 * lh

	used := l.section(left, half, summary.Seller)
	if h := l.section(left+half, half, summary.BilledTo); h > used {
		used = h
	}
	l.y += used + lh

	l.y += l.section(left, width, summary.ShippedTo) + lh

	l.put(left, width, SectionItems, s.Fonts.Heading, true, pdf.AlignLeft)
	l.y += lh

	xs := make([]float64, len(itemColumns))
	widths := make([]float64, len(itemColumns))
	x := left
	for i, c := range itemColumns {
		xs[i] = x
		widths[i] = c.width * width / columnUnits
		x += widths[i]
	}

	itemsTop := l.y
	l.itemHeader(xs, widths)

	opts := s.Format
	for _, item := range inv.Items {
		if !l.fits(lh) {
			l.newPage(itemsTop)
			l.itemHeader(xs, widths)
		}
		cells := []string{
			oneLine(item.Description),
			oneLine(item.Code),
			format.Fixed(item.Rate, opts),
			format.Quantity(item.Quantity),
			oneLine(item.Unit),
			format.Fixed(item.CGSTPercent, opts),
			format.Fixed(item.SGSTPercent, opts),
			format.Fixed(item.FinalAmount, opts),
		}
		for i, c := range itemColumns {
			l.put(xs[i], widths[i], cells[i], s.Fonts.Body, false, c.align)
		}
		l.y += lh
	}
	l.y += lh

	bankHeight := float64(len(summary.Bank.Fields)+1) * lh
	if !l.fits(bankHeight) {
		l.newPage(p.MarginTop)
	}
	l.y += l.section(left, width, summary.Bank) + lh

	if !l.fits(2 * lh) {
		l.newPage(p.MarginTop)
	}
	l.put(left, width, summary.TotalLabel, s.Fonts.Heading, true, pdf.AlignLeft)
	l.y += lh
	l.put(left, width, summary.Total, s.Fonts.Heading, true, pdf.AlignLeft)
	l.y += lh

	return l.doc
}
