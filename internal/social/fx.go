package social

import (
	"github.com/creatorpulse/creatorpulse/internal/social/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("social.store",
	fx.Provide(repository.Provide),
)
