package invoice

import (
	"github.com/smallbiznis/gstinvoice/internal/config"
	"github.com/smallbiznis/gstinvoice/internal/invoice/render"
	"github.com/smallbiznis/gstinvoice/internal/invoice/service"
	"github.com/smallbiznis/gstinvoice/internal/tax"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	tax.Module,
	fx.Provide(provideSettings),
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)

// provideSettings reads the document settings on every render so a reloaded
// document.yml applies to the next request.
func provideSettings(cfg config.Config, holder *config.DocumentConfigHolder) render.SettingsSource {
	return func() render.Settings {
		return render.SettingsFromConfig(holder.Get(), cfg.FilenameStyle)
	}
}
