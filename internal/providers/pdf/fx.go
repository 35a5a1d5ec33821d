package pdf

import (
	"github.com/smallbiznis/gstinvoice/internal/config"
	"go.uber.org/fx"
)

func provideConfig(cfg config.Config) Config {
	return Config{
		Engine:               cfg.PDFEngine,
		FontPath:             cfg.PDFFontPath,
		AllowNonReproducible: cfg.PDFAllowNonReproducible,
	}
}

var Module = fx.Module("pdf.provider",
	fx.Provide(provideConfig),
	fx.Provide(New),
)
