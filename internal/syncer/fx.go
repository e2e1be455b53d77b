package syncer

import (
	"github.com/creatorpulse/creatorpulse/internal/syncer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("syncer.service",
	fx.Provide(
		service.New,
	),
)
