package platform

import (
	"net/http"

	"github.com/creatorpulse/creatorpulse/internal/config"
	"github.com/creatorpulse/creatorpulse/internal/platform/adapters"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type RegistryParams struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Fetcher  adapters.Fetcher
	Store    platformdomain.Store
	Recorder platformdomain.Recorder
}

func NewDefaultFetcher(cfg config.Config) adapters.Fetcher {
	return adapters.NewHTTPFetcher(&http.Client{Timeout: cfg.AdapterTimeout})
}

func NewRegistry(p RegistryParams) *adapters.Registry {
	return adapters.Build(adapters.BuildParams{
		Timeout:  p.Cfg.AdapterTimeout,
		Log:      p.Log,
		Fetcher:  p.Fetcher,
		Store:    p.Store,
		Recorder: p.Recorder,
	})
}

var Module = fx.Module("platform.registry",
	fx.Provide(NewDefaultFetcher),
	fx.Provide(NewRegistry),
)
