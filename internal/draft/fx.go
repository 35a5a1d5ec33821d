package draft

import "go.uber.org/fx"

var Module = fx.Module("draft.store",
	fx.Provide(NewStore),
	fx.Invoke(RegisterMetrics),
)
