package service

import (
	"context"
	"time"

	invoicedomain "github.com/smallbiznis/gstinvoice/internal/invoice/domain"
	"github.com/smallbiznis/gstinvoice/internal/invoice/render"
	"github.com/smallbiznis/gstinvoice/internal/observability/logger"
	"github.com/smallbiznis/gstinvoice/internal/observability/metrics"
	taxdomain "github.com/smallbiznis/gstinvoice/internal/tax/domain"
	"github.com/smallbiznis/gstinvoice/pkg/telemetry/correlation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	Calculator taxdomain.Calculator
	Renderer   render.Renderer
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	calc     taxdomain.Calculator
	renderer render.Renderer
	metrics  *metrics.Metrics
}

func NewService(p ServiceParam) invoicedomain.Service {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		log:      log.Named("invoice.service"),
		calc:     p.Calculator,
		renderer: p.Renderer,
		metrics:  p.Metrics,
	}
}

// Generate computes the totals of req and renders them. An invoice without
// items is rejected before anything is computed or rendered.
func (s *Service) Generate(ctx context.Context, req invoicedomain.GenerateRequest) (*invoicedomain.Artifact, error) {
	start := time.Now()
	mode := req.Mode
	if mode == "" {
		mode = invoicedomain.ModeDocument
	}

	ctx, _ = correlation.EnsureCorrelationID(ctx)
	ctx, span := otel.Tracer("gstinvoice/invoice").Start(ctx, "invoice.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("invoice.mode", string(mode)),
		attribute.Int("invoice.items", len(req.Items)),
	)

	log := logger.WithContext(ctx, s.log).With(
		zap.String("mode", string(mode)),
		zap.Int("items", len(req.Items)),
	)

	if len(req.Items) == 0 {
		s.metrics.RecordRender(string(mode), metrics.OutcomeEmpty, time.Since(start), 0)
		log.Info("invoice rejected", zap.String("reason", invoicedomain.ErrEmptyInvoice.Error()))
		return nil, invoicedomain.ErrEmptyInvoice
	}

	items, total := s.calc.ComputeTotals(req.Items)
	inv := invoicedomain.Invoice{
		Parties:    req.Parties,
		Items:      items,
		GrandTotal: total,
	}

	artifact, err := s.renderer.Render(ctx, inv, mode)
	if err != nil {
		s.metrics.RecordRender(string(mode), metrics.OutcomeError, time.Since(start), 0)
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		log.Error("invoice render failed", zap.Error(err))
		return nil, err
	}

	took := time.Since(start)
	s.metrics.RecordRender(string(mode), metrics.OutcomeSuccess, took, artifact.Pages)
	span.SetAttributes(attribute.Int("invoice.pages", artifact.Pages))
	log.Info("invoice generated",
		zap.String("grand_total", total.String()),
		zap.Int("pages", artifact.Pages),
		zap.Int("bytes", len(artifact.Document)),
		zap.Duration("took", took),
	)

	return artifact, nil
}
