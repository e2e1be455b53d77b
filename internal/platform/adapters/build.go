package adapters

import (
	"time"

	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	"go.uber.org/zap"
)

type BuildParams struct {
	Timeout  time.Duration
	Log      *zap.Logger
	Fetcher  Fetcher
	Store    platformdomain.Store
	Recorder platformdomain.Recorder
}

// Build instantiates one adapter per catalog entry and registers them all.
func Build(p BuildParams) *Registry {
	built := make([]platformdomain.Adapter, 0, len(Catalog()))
	for _, descriptor := range Catalog() {
		built = append(built, newAdapter(descriptor, p.Fetcher, p.Store, p.Recorder, p.Log))
	}
	return NewRegistry(p.Timeout, p.Log, built...)
}
