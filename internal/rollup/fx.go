package rollup

import (
	"github.com/creatorpulse/creatorpulse/internal/rollup/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rollup.service",
	fx.Provide(service.New),
)
