package adapters

import (
	"context"
	"testing"
	"time"

	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	"go.uber.org/zap"
)

type fakeAdapter struct {
	name   string
	result platformdomain.SyncResult
	panics bool
	delay  time.Duration
}

func (f *fakeAdapter) Platform() string { return f.name }

func (f *fakeAdapter) Sync(ctx context.Context, account accountdomain.Account) platformdomain.SyncResult {
	if f.panics {
		panic("boom")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	return f.result
}

func TestDispatchUnsupportedPlatform(t *testing.T) {
	registry := NewRegistry(time.Second, zap.NewNop())

	result := registry.Dispatch(context.Background(), "unknown_platform", accountdomain.Account{})
	if result.Updated {
		t.Fatal("unsupported platform must not report updated")
	}
	if result.Error != "Unsupported platform: unknown_platform" {
		t.Fatalf("unexpected error message: %q", result.Error)
	}
}

func TestDispatchCaseInsensitive(t *testing.T) {
	adapter := &fakeAdapter{
		name:   "instagram",
		result: platformdomain.SyncResult{Platform: "instagram", Updated: true},
	}
	registry := NewRegistry(time.Second, zap.NewNop(), adapter)

	result := registry.Dispatch(context.Background(), "  Instagram ", accountdomain.Account{})
	if !result.Updated {
		t.Fatalf("expected dispatch to reach adapter, got %+v", result)
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	registry := NewRegistry(time.Second, zap.NewNop(), &fakeAdapter{name: "tiktok", panics: true})

	result := registry.Dispatch(context.Background(), "tiktok", accountdomain.Account{})
	if result.Updated {
		t.Fatal("panicking adapter must not report updated")
	}
	if result.Error == "" {
		t.Fatal("panicking adapter must surface an error")
	}
}

func TestDispatchTimesOut(t *testing.T) {
	registry := NewRegistry(20*time.Millisecond, zap.NewNop(), &fakeAdapter{
		name:  "youtube",
		delay: time.Second,
		result: platformdomain.SyncResult{
			Platform: "youtube",
			Updated:  true,
		},
	})

	start := time.Now()
	result := registry.Dispatch(context.Background(), "youtube", accountdomain.Account{})
	if time.Since(start) > 500*time.Millisecond {
		t.Fatal("dispatch did not honor timeout")
	}
	if result.Updated {
		t.Fatal("timed-out adapter must not report updated")
	}
	if result.Error == "" {
		t.Fatal("timed-out adapter must surface an error")
	}
}

func TestPlatformExists(t *testing.T) {
	registry := NewRegistry(time.Second, zap.NewNop(), &fakeAdapter{name: "twitch"})

	if !registry.PlatformExists("Twitch") {
		t.Fatal("expected twitch to exist")
	}
	if registry.PlatformExists("myspace") {
		t.Fatal("unexpected platform myspace")
	}
}
