package account

import (
	"github.com/creatorpulse/creatorpulse/internal/account/repository"
	"github.com/creatorpulse/creatorpulse/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
