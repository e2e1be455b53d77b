package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	"go.uber.org/zap"
)

// Registry maps platform identifiers to their adapters and isolates adapter
// failures from the caller.
type Registry struct {
	adapters map[string]platformdomain.Adapter
	timeout  time.Duration
	log      *zap.Logger
}

func NewRegistry(timeout time.Duration, log *zap.Logger, adapters ...platformdomain.Adapter) *Registry {
	registry := &Registry{
		adapters: map[string]platformdomain.Adapter{},
		timeout:  timeout,
		log:      log.Named("platform.registry"),
	}
	for _, a := range adapters {
		if a == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(a.Platform()))
		if name == "" {
			continue
		}
		registry.adapters[name] = a
	}
	return registry
}

func (r *Registry) PlatformExists(platform string) bool {
	if r == nil {
		return false
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	_, ok := r.adapters[platform]
	return ok
}

func (r *Registry) Platforms() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	return names
}

// Dispatch invokes the adapter for platform, bounding the call with the
// registry timeout. An unknown platform is a data-level outcome, not an
// error; a panicking or hanging adapter still yields a SyncResult so one
// buggy adapter can never abort a multi-account run.
func (r *Registry) Dispatch(ctx context.Context, platform string, account accountdomain.Account) platformdomain.SyncResult {
	name := strings.ToLower(strings.TrimSpace(platform))
	adapter, ok := r.adapters[name]
	if !ok {
		return platformdomain.SyncResult{
			Platform: platform,
			Updated:  false,
			Error:    fmt.Sprintf("Unsupported platform: %s", platform),
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	results := make(chan platformdomain.SyncResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.log.Error("adapter panicked",
					zap.String("platform", name),
					zap.Any("panic", rec),
				)
				results <- platformdomain.SyncResult{
					Platform: name,
					Updated:  false,
					Error:    fmt.Sprintf("adapter panic: %v", rec),
				}
			}
		}()
		results <- adapter.Sync(ctx, account)
	}()

	select {
	case result := <-results:
		return result
	case <-ctx.Done():
		return platformdomain.SyncResult{
			Platform: name,
			Updated:  false,
			Error:    fmt.Sprintf("sync timed out: %v", ctx.Err()),
		}
	}
}
