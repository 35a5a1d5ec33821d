package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/gstinvoice/internal/config"
	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	"github.com/smallbiznis/gstinvoice/internal/invoice/render"
	invoiceservice "github.com/smallbiznis/gstinvoice/internal/invoice/service"
	"github.com/smallbiznis/gstinvoice/internal/providers/pdf"
	taxservice "github.com/smallbiznis/gstinvoice/internal/tax/service"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"
)

var ErrInvalidInput = errors.New("invalid_input")

type invoiceFile struct {
	invoicedomain.Parties
	Items []invoicedomain.LineItem `json:"items"`
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render an invoice described in a YAML or JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "invoice file (YAML or JSON)", Required: true},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "summary or document", Value: string(invoicedomain.ModeDocument)},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path for the PDF (defaults to the invoice filename)"},
		},
		Action: func(c *cli.Context) error {
			mode, err := invoicedomain.ParseMode(c.String("mode"))
			if err != nil {
				return fmt.Errorf("%w: %q", err, c.String("mode"))
			}
			data, err := os.ReadFile(c.String("input"))
			if err != nil {
				return err
			}

			cfg := config.Load()
			holder, err := config.NewDocumentConfigHolder(cfg, zap.NewNop())
			if err != nil {
				return err
			}
			provider, err := pdf.New(pdf.Config{
				Engine:               cfg.PDFEngine,
				FontPath:             cfg.PDFFontPath,
				AllowNonReproducible: cfg.PDFAllowNonReproducible,
			})
			if err != nil {
				return err
			}
			svc := invoiceservice.NewService(invoiceservice.ServiceParam{
				Log:        zap.NewNop(),
				Calculator: taxservice.NewCalculator(),
				Renderer: render.NewRenderer(provider, func() render.Settings {
					return render.SettingsFromConfig(holder.Get(), cfg.FilenameStyle)
				}),
			})

			return renderFile(c.Context, svc, data, mode, c.String("out"), c.App.Writer)
		},
	}
}

// renderFile renders the invoice in data. Summaries are printed to stdout;
// documents are written to out, or to the artifact's filename when out is empty.
func renderFile(ctx context.Context, svc invoicedomain.Service, data []byte, mode invoicedomain.Mode, out string, stdout io.Writer) error {
	req, err := decodeInvoiceFile(data)
	if err != nil {
		return err
	}
	req.Mode = mode

	artifact, err := svc.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, invoicedomain.ErrEmptyInvoice) {
			return fmt.Errorf("%w: %s", err, invoicedomain.EmptyInvoiceMessage)
		}
		return err
	}

	if artifact.Mode == invoicedomain.ModeSummary {
		return render.WriteSummaryText(stdout, *artifact.Summary)
	}

	if out == "" {
		out = artifact.Filename
	}
	if err := os.WriteFile(out, artifact.Document, 0o644); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "wrote %s (%d pages)\n", out, artifact.Pages)
	return err
}

// decodeInvoiceFile accepts YAML or JSON. Numeric fields may be numbers or
// numeric strings; anything else, or a value outside the numeric bounds, is
// reported as ErrInvalidNumericField.
func decodeInvoiceFile(data []byte) (invoicedomain.GenerateRequest, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return invoicedomain.GenerateRequest{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var in invoiceFile
	if err := json.Unmarshal(raw, &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Type != reflect.TypeOf(decimal.Decimal{}) {
			return invoicedomain.GenerateRequest{}, fmt.Errorf("%w: field %s must be text", ErrInvalidInput, typeErr.Field)
		}
		return invoicedomain.GenerateRequest{}, fmt.Errorf("%w: %v", invoicedomain.ErrInvalidNumericField, err)
	}

	items := make([]invoicedomain.LineItem, 0, len(in.Items))
	for i, item := range in.Items {
		if err := invoicedomain.CheckItemRange(item); err != nil {
			return invoicedomain.GenerateRequest{}, fmt.Errorf("%w: items[%d].%w", invoicedomain.ErrInvalidNumericField, i, err)
		}
		items = append(items, item.Inputs())
	}
	return invoicedomain.GenerateRequest{Parties: in.Parties, Items: items}, nil
}
