package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	"github.com/creatorpulse/creatorpulse/internal/config"
	"github.com/creatorpulse/creatorpulse/internal/platform/adapters"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	syncerdomain "github.com/creatorpulse/creatorpulse/internal/syncer/domain"
	"go.uber.org/zap"
)

type accountsStub struct {
	accounts []accountdomain.Account
	err      error
}

func (s *accountsStub) ListByUser(ctx context.Context, userID snowflake.ID) ([]accountdomain.Account, error) {
	return s.accounts, s.err
}

func (s *accountsStub) Upsert(ctx context.Context, account *accountdomain.Account) error {
	return nil
}

func (s *accountsStub) DeleteByUserPlatform(ctx context.Context, userID snowflake.ID, platform string) (int64, error) {
	return 0, nil
}

func (s *accountsStub) DistinctUserIDs(ctx context.Context) ([]snowflake.ID, error) {
	return nil, nil
}

type stubAdapter struct {
	name   string
	result platformdomain.SyncResult
	panics bool
	delay  time.Duration
}

func (a *stubAdapter) Platform() string { return a.name }

func (a *stubAdapter) Sync(ctx context.Context, account accountdomain.Account) platformdomain.SyncResult {
	if a.panics {
		panic("adapter blew up")
	}
	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
		}
	}
	return a.result
}

func newTestService(t *testing.T, accounts []accountdomain.Account, registryAdapters ...platformdomain.Adapter) syncerdomain.Service {
	t.Helper()
	return New(Params{
		Cfg:      config.Config{SyncWorkers: 2},
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)),
		Accounts: &accountsStub{accounts: accounts},
		Registry: adapters.NewRegistry(100*time.Millisecond, zap.NewNop(), registryAdapters...),
	})
}

func TestSyncAllAccountsIsolatesFailures(t *testing.T) {
	accounts := []accountdomain.Account{
		{UserID: 1, Platform: "instagram", Handle: "creator"},
		{UserID: 1, Platform: "tiktok", Handle: "creator"},
		{UserID: 1, Platform: "youtube", Handle: "creator"},
		{UserID: 1, Platform: "myspace", Handle: "creator"},
	}
	svc := newTestService(t, accounts,
		&stubAdapter{name: "instagram", result: platformdomain.SyncResult{Platform: "instagram", Updated: true, PostsSynced: 3}},
		&stubAdapter{name: "tiktok", panics: true},
		&stubAdapter{name: "youtube", delay: time.Second},
	)

	report, err := svc.SyncAllAccounts(context.Background(), 1)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if report.Status != syncerdomain.StatusCompleted {
		t.Fatalf("expected completed, got %s", report.Status)
	}
	if len(report.Synced) != 4 {
		t.Fatalf("expected 4 results, got %d", len(report.Synced))
	}

	// Results stay in account enumeration order.
	if report.Synced[0].Platform != "instagram" || !report.Synced[0].Updated {
		t.Fatalf("healthy adapter result degraded: %+v", report.Synced[0])
	}
	if report.Synced[1].Error == "" || report.Synced[1].Updated {
		t.Fatalf("panicking adapter must surface error: %+v", report.Synced[1])
	}
	if report.Synced[2].Error == "" || report.Synced[2].Updated {
		t.Fatalf("hanging adapter must time out: %+v", report.Synced[2])
	}
	if report.Synced[3].Error != "Unsupported platform: myspace" {
		t.Fatalf("unexpected unsupported platform error: %q", report.Synced[3].Error)
	}
}

func TestSyncAllAccountsNoAccounts(t *testing.T) {
	svc := newTestService(t, nil)

	report, err := svc.SyncAllAccounts(context.Background(), 1)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if report.Status != syncerdomain.StatusNoAccounts {
		t.Fatalf("expected no_accounts, got %s", report.Status)
	}
	if len(report.Synced) != 0 {
		t.Fatalf("expected empty results, got %d", len(report.Synced))
	}
}

func TestSyncAllAccountsInvalidUser(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.SyncAllAccounts(context.Background(), 0)
	if !errors.Is(err, syncerdomain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
}

func TestSyncAllAccountsListFailure(t *testing.T) {
	svc := New(Params{
		Cfg:      config.Config{SyncWorkers: 2},
		Log:      zap.NewNop(),
		Clock:    clock.NewFakeClock(time.Now()),
		Accounts: &accountsStub{err: errors.New("db down")},
		Registry: adapters.NewRegistry(time.Second, zap.NewNop()),
	})

	_, err := svc.SyncAllAccounts(context.Background(), 1)
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected list error to propagate, got %v", err)
	}
}
