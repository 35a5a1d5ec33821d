//go:generate mockgen -destination=mock/provider.go -package=mock github.com/smallbiznis/gstinvoice/internal/providers/pdf Provider

package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	EngineFPDF   = "fpdf"
	EngineMaroto = "maroto"
)

var (
	ErrUnknownEngine         = errors.New("unknown_pdf_engine")
	ErrEmptyDocument         = errors.New("empty_document")
	ErrNonReproducibleEngine = errors.New("non_reproducible_pdf_engine")
)

// Provider draws a laid out document as PDF bytes.
type Provider interface {
	Generate(ctx context.Context, doc Document) ([]byte, error)
}

// Config selects and configures the drawing engine.
type Config struct {
	Engine string
	// FontPath points at a UTF-8 TrueType font. When empty the built-in
	// Helvetica is used and non-cp1252 symbols are transliterated.
	FontPath string
	// AllowNonReproducible admits engines whose output differs between
	// runs for the same document. maroto stamps the wall clock into the
	// modification date and writes font objects in map order.
	AllowNonReproducible bool
}

// Reproducible reports whether engine yields identical bytes for identical
// documents.
func Reproducible(engine string) bool {
	switch normalizeEngine(engine) {
	case EngineFPDF, "":
		return true
	default:
		return false
	}
}

func New(cfg Config) (Provider, error) {
	switch engine := normalizeEngine(cfg.Engine); engine {
	case EngineFPDF, "":
		return &FPDFProvider{fontPath: strings.TrimSpace(cfg.FontPath)}, nil
	case EngineMaroto:
		if !cfg.AllowNonReproducible {
			return nil, fmt.Errorf("%w: %q (set PDF_ALLOW_NONREPRODUCIBLE to use it)", ErrNonReproducibleEngine, engine)
		}
		return &MarotoProvider{fontPath: strings.TrimSpace(cfg.FontPath)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, cfg.Engine)
	}
}

func normalizeEngine(engine string) string {
	return strings.ToLower(strings.TrimSpace(engine))
}

func validate(doc Document) error {
	if len(doc.Pages) == 0 || doc.PageWidth <= 0 || doc.PageHeight <= 0 {
		return ErrEmptyDocument
	}
	return nil
}
