package render

import (
	"time"

	"github.com/smallbiznis/gstinvoice/internal/config"
	"github.com/smallbiznis/gstinvoice/internal/invoice/format"
)

// Settings is the presentation input of a render call. Two calls with equal
// settings and equal invoices produce identical artifacts.
type Settings struct {
	Title         string
	Author        string
	CreatedAt     time.Time
	Format        format.Options
	Page          config.PageConfig
	Fonts         config.FontConfig
	FilenameStyle string
}

// SettingsSource returns the settings to use for the next render call.
type SettingsSource func() Settings

func SettingsFromConfig(doc config.DocumentConfig, filenameStyle string) Settings {
	return Settings{
		Title:     doc.Title,
		Author:    doc.Author,
		CreatedAt: doc.CreationTime(),
		Format: format.Options{
			Symbol:         doc.Currency.Symbol,
			Places:         int32(doc.Currency.Places),
			GroupSeparator: doc.Currency.GroupSeparator,
			DecimalPoint:   doc.Currency.DecimalPoint,
		},
		Page:          doc.Page,
		Fonts:         doc.Fonts,
		FilenameStyle: filenameStyle,
	}
}

func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultDocumentConfig(), config.FilenameStyleFixed)
}

// StaticSettings always returns s.
func StaticSettings(s Settings) SettingsSource {
	return func() Settings { return s }
}
