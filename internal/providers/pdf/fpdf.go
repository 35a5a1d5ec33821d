package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	coreFontFamily = "Helvetica"
	utf8FontFamily = "invoicefont"
)

// FPDFProvider draws every element at its absolute position, shortening text
// that would spill out of its box. Creation and
// modification dates come from the document and the catalog is sorted, so
// identical documents produce identical bytes.
type FPDFProvider struct {
	fontPath string
}

func (p *FPDFProvider) Generate(ctx context.Context, doc Document) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: doc.PageWidth, Ht: doc.PageHeight},
	})
	f.SetMargins(doc.Margins.Left, doc.Margins.Top, doc.Margins.Right)
	f.SetAutoPageBreak(false, doc.Margins.Bottom)
	f.SetCreationDate(doc.CreatedAt)
	f.SetModificationDate(doc.CreatedAt)
	f.SetCatalogSort(true)
	f.SetTitle(doc.Title, true)
	f.SetAuthor(doc.Author, true)
	f.SetCreator(doc.Creator, true)

	family, encode := p.fonts(f)

	for _, page := range doc.Pages {
		f.AddPage()
		for _, el := range page.Elements {
			style := ""
			if el.Bold {
				style = "B"
			}
			f.SetFont(family, style, el.Size)
			f.SetXY(el.X, el.Y)
			text := fitText(encode(el.Text), el.Width-2*f.GetCellMargin(), f.GetStringWidth)
			f.CellFormat(el.Width, el.Height, text, "", 0, string(el.Align), false, 0, "")
		}
	}

	if err := f.Error(); err != nil {
		return nil, fmt.Errorf("fpdf: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("fpdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *FPDFProvider) fonts(f *gofpdf.Fpdf) (string, func(string) string) {
	if p.fontPath != "" {
		f.AddUTF8Font(utf8FontFamily, "", p.fontPath)
		f.AddUTF8Font(utf8FontFamily, "B", p.fontPath)
		return utf8FontFamily, func(s string) string { return s }
	}

	translate := f.UnicodeTranslatorFromDescriptor("")
	return coreFontFamily, func(s string) string {
		return translate(cp1252Fallbacks.Replace(s))
	}
}
