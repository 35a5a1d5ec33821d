package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DRAFT_TTL", "")
	t.Setenv("PDF_ENGINE", "")
	t.Setenv("PDF_ALLOW_NONREPRODUCIBLE", "")
	t.Setenv("DOCUMENT_FILENAME_STYLE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "")
	t.Setenv("OTEL_SAMPLING_RATIO", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Hour, cfg.DraftTTL)
	assert.Equal(t, "fpdf", cfg.PDFEngine)
	assert.False(t, cfg.PDFAllowNonReproducible)
	assert.Equal(t, FilenameStyleFixed, cfg.FilenameStyle)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "grpc", cfg.OTelProtocol)
	assert.Equal(t, 0.1, cfg.OTelSamplingRatio)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DRAFT_TTL", "15m")
	t.Setenv("PDF_ENGINE", "MAROTO")
	t.Setenv("PDF_ALLOW_NONREPRODUCIBLE", "true")
	t.Setenv("DOCUMENT_FILENAME_STYLE", "Customer")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "HTTP")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.5")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.DraftTTL)
	assert.Equal(t, "maroto", cfg.PDFEngine)
	assert.True(t, cfg.PDFAllowNonReproducible)
	assert.Equal(t, FilenameStyleCustomer, cfg.FilenameStyle)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "collector:4318", cfg.OTelEndpoint)
	assert.Equal(t, "http", cfg.OTelProtocol)
	assert.Equal(t, 0.5, cfg.OTelSamplingRatio)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("DRAFT_TTL", "soon")

	assert.Equal(t, 2*time.Hour, Load().DraftTTL)
}

func TestDocumentConfigHolder_DefaultsWithoutFile(t *testing.T) {
	holder, err := NewDocumentConfigHolder(Config{}, zap.NewNop())
	require.NoError(t, err)

	doc := holder.Get()
	assert.Equal(t, DefaultDocumentConfig(), doc)
	assert.Equal(t, "₹", doc.Currency.Symbol)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), doc.CreationTime())
}

func TestDocumentConfigHolder_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document.yml")
	require.NoError(t, os.WriteFile(path, []byte(`document:
  title: Tax Invoice
  page:
    lineHeight: 5
  currency:
    places: 3
`), 0o600))

	holder, err := NewDocumentConfigHolder(Config{DocumentConfigFile: path}, zap.NewNop())
	require.NoError(t, err)

	doc := holder.Get()
	assert.Equal(t, "Tax Invoice", doc.Title)
	assert.Equal(t, 5.0, doc.Page.LineHeight)
	assert.Equal(t, 3, doc.Currency.Places)
	assert.Equal(t, 210.0, doc.Page.Width)
	assert.Equal(t, "₹", doc.Currency.Symbol)
}

func TestDocumentConfigHolder_RejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document.yml")
	require.NoError(t, os.WriteFile(path, []byte("document:\n  page:\n    lineHeight: 0\n"), 0o600))

	_, err := NewDocumentConfigHolder(Config{DocumentConfigFile: path}, zap.NewNop())

	assert.Error(t, err)
}

func TestDocumentConfigHolder_InvalidReloadKeepsCurrent(t *testing.T) {
	holder := NewStaticDocumentConfigHolder(DefaultDocumentConfig())

	v := viper.New()
	setDocumentDefaults(v)
	v.Set("document.currency.places", 12)
	holder.reload(v, "document.yml")

	assert.Equal(t, 2, holder.Get().Currency.Places)

	v.Set("document.currency.places", 0)
	holder.reload(v, "document.yml")

	assert.Equal(t, 0, holder.Get().Currency.Places)
}

func TestValidateDocumentConfig(t *testing.T) {
	valid := DefaultDocumentConfig()
	require.NoError(t, ValidateDocumentConfig(valid))

	tooWide := valid
	tooWide.Page.MarginLeft = 120
	tooWide.Page.MarginRight = 100
	assert.Error(t, ValidateDocumentConfig(tooWide))

	badDate := valid
	badDate.CreatedAt = "yesterday"
	assert.Error(t, ValidateDocumentConfig(badDate))

	short := valid
	short.Page.Height = 100
	assert.Error(t, ValidateDocumentConfig(short))
}
