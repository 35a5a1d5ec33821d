package render

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/gstinvoice/internal/config"
	"github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	"github.com/smallbiznis/gstinvoice/internal/providers/pdf"
)

// Renderer turns a computed invoice into a summary or a PDF document.
type Renderer interface {
	Render(ctx context.Context, inv domain.Invoice, mode domain.Mode) (*domain.Artifact, error)
}

type renderer struct {
	provider pdf.Provider
	settings SettingsSource
}

func NewRenderer(provider pdf.Provider, settings SettingsSource) Renderer {
	if settings == nil {
		settings = StaticSettings(DefaultSettings())
	}
	return &renderer{provider: provider, settings: settings}
}

func (r *renderer) Render(ctx context.Context, inv domain.Invoice, mode domain.Mode) (*domain.Artifact, error) {
	s := r.settings()

	switch mode {
	case domain.ModeSummary:
		summary := BuildSummary(inv, s)
		return &domain.Artifact{
			Mode:        mode,
			Summary:     &summary,
			ContentType: domain.ContentTypeJSON,
		}, nil
	case domain.ModeDocument:
		doc := BuildLayout(inv, s)
		out, err := r.provider.Generate(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("render document: %w", err)
		}
		return &domain.Artifact{
			Mode:        mode,
			Document:    out,
			Pages:       len(doc.Pages),
			ContentType: domain.ContentTypePDF,
			Filename:    Filename(inv, s.FilenameStyle),
		}, nil
	default:
		return nil, domain.ErrInvalidMode
	}
}

// Filename names the document download. The fixed style always yields
// invoice.pdf; the customer style appends a slug of the billed-to name.
func Filename(inv domain.Invoice, style string) string {
	if style != config.FilenameStyleCustomer {
		return domain.DefaultFilename
	}
	name := slug.Make(inv.BilledTo.Name)
	if name == "" {
		return domain.DefaultFilename
	}
	return "invoice-" + name + ".pdf"
}
