package config

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DocumentConfig controls the presentation of rendered invoices.
type DocumentConfig struct {
	Title     string         `mapstructure:"title"`
	Author    string         `mapstructure:"author"`
	CreatedAt string         `mapstructure:"createdAt"` // RFC3339, written into PDF metadata
	Currency  CurrencyConfig `mapstructure:"currency"`
	Page      PageConfig     `mapstructure:"page"`
	Fonts     FontConfig     `mapstructure:"fonts"`
}

type CurrencyConfig struct {
	Symbol         string `mapstructure:"symbol"`
	Places         int    `mapstructure:"places"`
	GroupSeparator string `mapstructure:"groupSeparator"`
	DecimalPoint   string `mapstructure:"decimalPoint"`
}

// PageConfig is expressed in millimetres.
type PageConfig struct {
	Width        float64 `mapstructure:"width"`
	Height       float64 `mapstructure:"height"`
	MarginLeft   float64 `mapstructure:"marginLeft"`
	MarginTop    float64 `mapstructure:"marginTop"`
	MarginRight  float64 `mapstructure:"marginRight"`
	MarginBottom float64 `mapstructure:"marginBottom"`
	LineHeight   float64 `mapstructure:"lineHeight"`
}

// FontConfig is expressed in points.
type FontConfig struct {
	Title   float64 `mapstructure:"title"`
	Heading float64 `mapstructure:"heading"`
	Body    float64 `mapstructure:"body"`
}

// CreationTime parses CreatedAt. Invalid or empty values yield the default instant.
func (d DocumentConfig) CreationTime() time.Time {
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(d.CreatedAt)); err == nil {
		return t.UTC()
	}
	t, _ := time.Parse(time.RFC3339, DefaultDocumentConfig().CreatedAt)
	return t
}

func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		Title:     "GST Invoice",
		Author:    "gstinvoice",
		CreatedAt: "2024-01-01T00:00:00Z",
		Currency: CurrencyConfig{
			Symbol:         "₹",
			Places:         2,
			GroupSeparator: ",",
			DecimalPoint:   ".",
		},
		Page: PageConfig{
			Width:        210,
			Height:       297,
			MarginLeft:   15,
			MarginTop:    15,
			MarginRight:  15,
			MarginBottom: 15,
			LineHeight:   6,
		},
		Fonts: FontConfig{
			Title:   18,
			Heading: 11,
			Body:    9,
		},
	}
}

type DocumentConfigHolder struct {
	current atomic.Value // holds DocumentConfig
	log     *zap.Logger
}

type documentFile struct {
	Document DocumentConfig `mapstructure:"document"`
}

// NewDocumentConfigHolder reads document.yml (or cfg.DocumentConfigFile) on
// top of the defaults and reloads it whenever the file changes. A reload
// that fails validation is ignored.
func NewDocumentConfigHolder(cfg Config, log *zap.Logger) (*DocumentConfigHolder, error) {
	if log == nil {
		log = zap.NewNop()
	}

	v := viper.New()
	if cfg.DocumentConfigFile != "" {
		v.SetConfigFile(cfg.DocumentConfigFile)
	} else {
		v.SetConfigName("document")
		v.SetConfigType("yml")
		v.AddConfigPath("/etc/gstinvoice")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GSTINVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDocumentDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read document config: %w", err)
		}
	}

	doc, err := decodeDocumentConfig(v)
	if err != nil {
		return nil, err
	}

	holder := &DocumentConfigHolder{log: log}
	holder.current.Store(doc)

	if used := v.ConfigFileUsed(); used != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			holder.reload(v, e.Name)
		})
		v.WatchConfig()
		log.Info("document config loaded", zap.String("file", used))
	}

	return holder, nil
}

// NewStaticDocumentConfigHolder returns a holder that never reloads.
func NewStaticDocumentConfigHolder(doc DocumentConfig) *DocumentConfigHolder {
	holder := &DocumentConfigHolder{log: zap.NewNop()}
	holder.current.Store(doc)
	return holder
}

func (h *DocumentConfigHolder) Get() DocumentConfig {
	return h.current.Load().(DocumentConfig)
}

func (h *DocumentConfigHolder) reload(v *viper.Viper, name string) {
	updated, err := decodeDocumentConfig(v)
	if err != nil {
		h.log.Warn("invalid document config ignored", zap.String("file", name), zap.Error(err))
		return
	}
	h.current.Store(updated)
	h.log.Info("document config reloaded", zap.String("file", name))
}

func setDocumentDefaults(v *viper.Viper) {
	d := DefaultDocumentConfig()
	v.SetDefault("document.title", d.Title)
	v.SetDefault("document.author", d.Author)
	v.SetDefault("document.createdAt", d.CreatedAt)
	v.SetDefault("document.currency.symbol", d.Currency.Symbol)
	v.SetDefault("document.currency.places", d.Currency.Places)
	v.SetDefault("document.currency.groupSeparator", d.Currency.GroupSeparator)
	v.SetDefault("document.currency.decimalPoint", d.Currency.DecimalPoint)
	v.SetDefault("document.page.width", d.Page.Width)
	v.SetDefault("document.page.height", d.Page.Height)
	v.SetDefault("document.page.marginLeft", d.Page.MarginLeft)
	v.SetDefault("document.page.marginTop", d.Page.MarginTop)
	v.SetDefault("document.page.marginRight", d.Page.MarginRight)
	v.SetDefault("document.page.marginBottom", d.Page.MarginBottom)
	v.SetDefault("document.page.lineHeight", d.Page.LineHeight)
	v.SetDefault("document.fonts.title", d.Fonts.Title)
	v.SetDefault("document.fonts.heading", d.Fonts.Heading)
	v.SetDefault("document.fonts.body", d.Fonts.Body)
}

func decodeDocumentConfig(v *viper.Viper) (DocumentConfig, error) {
	var file documentFile
	if err := v.Unmarshal(&file); err != nil {
		return DocumentConfig{}, fmt.Errorf("decode document config: %w", err)
	}
	if err := ValidateDocumentConfig(file.Document); err != nil {
		return DocumentConfig{}, err
	}
	return file.Document, nil
}

func ValidateDocumentConfig(d DocumentConfig) error {
	p := d.Page
	switch {
	case d.Currency.Places < 0 || d.Currency.Places > 6:
		return errors.New("document.currency.places must be between 0 and 6")
	case p.Width <= 0 || p.Height <= 0:
		return errors.New("document.page width and height must be positive")
	case p.LineHeight <= 0:
		return errors.New("document.page.lineHeight must be positive")
	case p.MarginLeft < 0 || p.MarginTop < 0 || p.MarginRight < 0 || p.MarginBottom < 0:
		return errors.New("document.page margins cannot be negative")
	case p.MarginLeft+p.MarginRight >= p.Width:
		return errors.New("document.page horizontal margins exceed the page width")
	case p.MarginTop+p.MarginBottom+20*p.LineHeight > p.Height:
		return errors.New("document.page is too short for the fixed header blocks")
	case d.Fonts.Title <= 0 || d.Fonts.Heading <= 0 || d.Fonts.Body <= 0:
		return errors.New("document.fonts sizes must be positive")
	}
	if strings.TrimSpace(d.CreatedAt) != "" {
		if _, err := time.Parse(time.RFC3339, strings.TrimSpace(d.CreatedAt)); err != nil {
			return fmt.Errorf("document.createdAt: %w", err)
		}
	}
	return nil
}
