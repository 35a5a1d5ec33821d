package pdf

import (
	"sort"
	"strings"
	"time"
)

// Align is the horizontal alignment of an element inside its box.
type Align string

const (
	AlignLeft  Align = "L"
	AlignRight Align = "R"
)

// Document is a fully laid out, paginated document. Engines draw it as is;
// they never move elements or introduce page breaks of their own.
type Document struct {
	Title     string
	Author    string
	Creator   string
	CreatedAt time.Time

	PageWidth  float64 // mm
	PageHeight float64 // mm
	Margins    Margins

	Pages []Page
}

// Margins in mm.
type Margins struct {
	Left, Top, Right, Bottom float64
}

type Page struct {
	Elements []Element
}

// Element is a single line of text placed in a box whose top-left corner is
// (X, Y), in mm from the top-left corner of the page.
type Element struct {
	X, Y          float64
	Width, Height float64
	Text          string
	Size          float64 // pt
	Bold          bool
	Align         Align
}

// Text returns every element's text in drawing order, one per line, pages
// separated by a form feed. Useful to compare layouts without PDF bytes.
func (d Document) Text() string {
	var b strings.Builder
	for i, page := range d.Pages {
		if i > 0 {
			b.WriteString("\f\n")
		}
		for _, el := range page.Elements {
			b.WriteString(el.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// cp1252Fallbacks replaces runes the built-in PDF fonts cannot encode.
var cp1252Fallbacks = strings.NewReplacer(
	"₹", "Rs.",
)

const ellipsis = "..."

// fitText shortens s and appends an ellipsis until measure reports it fits
// width. Text that already fits is returned unchanged.
func fitText(s string, width float64, measure func(string) float64) string {
	if width <= 0 || measure(s) <= width {
		return s
	}
	runes := []rune(s)
	// largest prefix length whose shortened form still fits
	n := sort.Search(len(runes), func(i int) bool {
		return measure(string(runes[:i+1])+ellipsis) > width
	})
	if n == 0 {
		return ""
	}
	return strings.TrimRight(string(runes[:n]), " ") + ellipsis
}
