package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds process configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	LogLevel  string
	LogFormat string

	OTelEnabled       bool
	OTelEndpoint      string
	OTelProtocol      string
	OTelSamplingRatio float64

	// RateLimit uses the limiter "<count>-<period>" format, e.g. "120-M".
	// An empty value disables rate limiting.
	RateLimit     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DraftTTL time.Duration

	PDFEngine               string
	PDFFontPath             string
	PDFAllowNonReproducible bool
	FilenameStyle           string
	DocumentConfigFile      string
}

const (
	FilenameStyleFixed    = "fixed"
	FilenameStyleCustomer = "customer"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewDocumentConfigHolder),
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:                 getenv("APP_SERVICE", "gstinvoice"),
		AppVersion:              getenv("APP_VERSION", "0.1.0"),
		Environment:             getenv("ENVIRONMENT", "development"),
		HTTPAddr:                getenv("HTTP_ADDR", ":8080"),
		LogLevel:                strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogFormat:               strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
		OTelEnabled:             getenvBool("OTEL_ENABLED", false),
		OTelEndpoint:            strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")),
		OTelProtocol:            strings.ToLower(strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"))),
		OTelSamplingRatio:       getenvFloat("OTEL_SAMPLING_RATIO", 0.1),
		RateLimit:               strings.TrimSpace(getenv("RATE_LIMIT", "120-M")),
		RedisAddr:               strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword:           getenv("REDIS_PASSWORD", ""),
		RedisDB:                 getenvInt("REDIS_DB", 0),
		DraftTTL:                getenvDuration("DRAFT_TTL", 2*time.Hour),
		PDFEngine:               strings.ToLower(getenv("PDF_ENGINE", "fpdf")),
		PDFFontPath:             strings.TrimSpace(getenv("PDF_FONT_PATH", "")),
		PDFAllowNonReproducible: getenvBool("PDF_ALLOW_NONREPRODUCIBLE", false),
		FilenameStyle:           normalizeFilenameStyle(getenv("DOCUMENT_FILENAME_STYLE", FilenameStyleFixed)),
		DocumentConfigFile:      strings.TrimSpace(getenv("DOCUMENT_CONFIG_FILE", "")),
	}
}

func normalizeFilenameStyle(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case FilenameStyleCustomer:
		return FilenameStyleCustomer
	default:
		return FilenameStyleFixed
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
