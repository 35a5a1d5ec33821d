package pdf

import (
	"context"
	"fmt"
	"sort"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

const marotoFontFamily = "invoicefont"

// MarotoProvider maps every layout page onto one maroto page. Elements that
// share a vertical offset become one row; vertical gaps become empty rows.
type MarotoProvider struct {
	fontPath string
}

func (p *MarotoProvider) Generate(ctx context.Context, doc Document) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	builder := config.NewBuilder().
		WithDimensions(doc.PageWidth, doc.PageHeight).
		WithLeftMargin(doc.Margins.Left).
		WithTopMargin(doc.Margins.Top).
		WithRightMargin(doc.Margins.Right).
		WithBottomMargin(doc.Margins.Bottom).
		WithCreationDate(doc.CreatedAt).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Author, true).
		WithCreator(doc.Creator, true).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		})

	family := fontfamily.Helvetica
	encode := cp1252Fallbacks.Replace
	if p.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(marotoFontFamily, fontstyle.Normal, p.fontPath).
			AddUTF8Font(marotoFontFamily, fontstyle.Bold, p.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("maroto font: %w", err)
		}
		builder = builder.WithCustomFonts(fonts)
		family = marotoFontFamily
		encode = func(s string) string { return s }
	}
	builder = builder.WithDefaultFont(&props.Font{Family: family, Size: 9})

	m := maroto.New(builder.Build())
	for _, pg := range doc.Pages {
		m.AddPages(marotoPage(pg, doc, family, encode))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("maroto: %w", err)
	}
	return out.GetBytes(), nil
}

type layoutRow struct {
	y        float64
	height   float64
	elements []Element
}

// groupRows buckets elements by vertical offset, ordered top to bottom.
// Elements keep their drawing order inside a row.
func groupRows(elements []Element) []layoutRow {
	index := map[float64]int{}
	rows := make([]layoutRow, 0, len(elements))
	for _, el := range elements {
		i, ok := index[el.Y]
		if !ok {
			i = len(rows)
			index[el.Y] = i
			rows = append(rows, layoutRow{y: el.Y})
		}
		if el.Height > rows[i].height {
			rows[i].height = el.Height
		}
		rows[i].elements = append(rows[i].elements, el)
	}
	sort.SliceStable(rows, func(a, b int) bool { return rows[a].y < rows[b].y })
	return rows
}

func marotoPage(pg Page, doc Document, family string, encode func(string) string) core.Page {
	out := page.New()
	cursor := doc.Margins.Top
	for _, r := range groupRows(pg.Elements) {
		if gap := r.y - cursor; gap > 0.01 {
			out.Add(row.New(gap))
			cursor = r.y
		}

		components := make([]core.Component, 0, len(r.elements))
		for _, el := range r.elements {
			components = append(components, text.New(encode(el.Text), marotoTextProps(el, doc, family)))
		}
		out.Add(row.New(r.height).Add(col.New(12).Add(components...)))
		cursor += r.height
	}
	return out
}

func marotoTextProps(el Element, doc Document, family string) props.Text {
	p := props.Text{
		Family: family,
		Size:   el.Size,
		Left:   el.X - doc.Margins.Left,
		Align:  align.Left,
	}
	if el.Bold {
		p.Style = fontstyle.Bold
	}
	if el.Align == AlignRight {
		contentRight := doc.PageWidth - doc.Margins.Right
		p.Align = align.Right
		p.Left = 0
		p.Right = contentRight - (el.X + el.Width)
	}
	return p
}
