package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	rollupdomain "github.com/creatorpulse/creatorpulse/internal/rollup/domain"
	syncerdomain "github.com/creatorpulse/creatorpulse/internal/syncer/domain"
	"go.uber.org/zap"
)

type accountsStub struct {
	userIDs []snowflake.ID
	err     error
}

func (s *accountsStub) ListByUser(ctx context.Context, userID snowflake.ID) ([]accountdomain.Account, error) {
	return nil, nil
}

func (s *accountsStub) Upsert(ctx context.Context, account *accountdomain.Account) error {
	return nil
}

func (s *accountsStub) DeleteByUserPlatform(ctx context.Context, userID snowflake.ID, platform string) (int64, error) {
	return 0, nil
}

func (s *accountsStub) DistinctUserIDs(ctx context.Context) ([]snowflake.ID, error) {
	return s.userIDs, s.err
}

type syncerStub struct {
	mu     sync.Mutex
	synced []snowflake.ID
	errFor map[snowflake.ID]error
}

func (s *syncerStub) SyncAllAccounts(ctx context.Context, userID snowflake.ID) (syncerdomain.SyncReport, error) {
	s.mu.Lock()
	s.synced = append(s.synced, userID)
	s.mu.Unlock()
	if err := s.errFor[userID]; err != nil {
		return syncerdomain.SyncReport{}, err
	}
	return syncerdomain.SyncReport{Status: syncerdomain.StatusCompleted}, nil
}

type rollupStub struct {
	mu         sync.Mutex
	aggregated []snowflake.ID
	errFor     map[snowflake.ID]error
}

func (s *rollupStub) Aggregate(ctx context.Context, userID snowflake.ID) error {
	s.mu.Lock()
	s.aggregated = append(s.aggregated, userID)
	s.mu.Unlock()
	return s.errFor[userID]
}

func (s *rollupStub) ListDaily(ctx context.Context, userID snowflake.ID, platform string) ([]rollupdomain.DailyMetric, error) {
	return nil, nil
}

func (s *rollupStub) ListTotals(ctx context.Context, userID snowflake.ID) ([]rollupdomain.LifetimeMetric, error) {
	return nil, nil
}

func newTestScheduler(t *testing.T, accounts *accountsStub, syncerSvc *syncerStub, rollupSvc *rollupStub) *Scheduler {
	t.Helper()
	sched, err := New(Params{
		Log:       zap.NewNop(),
		Clock:     clock.NewFakeClock(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)),
		Accounts:  accounts,
		SyncerSvc: syncerSvc,
		RollupSvc: rollupSvc,
	})
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	return sched
}

func TestRunOnceSyncsAndAggregatesEveryUser(t *testing.T) {
	syncerSvc := &syncerStub{}
	rollupSvc := &rollupStub{}
	sched := newTestScheduler(t, &accountsStub{userIDs: []snowflake.ID{1, 2, 3}}, syncerSvc, rollupSvc)

	if err := sched.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if len(syncerSvc.synced) != 3 {
		t.Fatalf("expected 3 users synced, got %d", len(syncerSvc.synced))
	}
	if len(rollupSvc.aggregated) != 3 {
		t.Fatalf("expected 3 users aggregated, got %d", len(rollupSvc.aggregated))
	}
}

func TestRunOnceFailingUserDoesNotBlockOthers(t *testing.T) {
	syncerSvc := &syncerStub{errFor: map[snowflake.ID]error{2: errors.New("sync failed")}}
	rollupSvc := &rollupStub{}
	sched := newTestScheduler(t, &accountsStub{userIDs: []snowflake.ID{1, 2, 3}}, syncerSvc, rollupSvc)

	err := sched.SyncAndRollupJob(context.Background())
	if err == nil {
		t.Fatal("expected joined error for failing user")
	}
	if len(syncerSvc.synced) != 3 {
		t.Fatalf("all users must still be attempted, got %d", len(syncerSvc.synced))
	}
	// The failed user is skipped for aggregation, the rest proceed.
	if len(rollupSvc.aggregated) != 2 {
		t.Fatalf("expected 2 aggregations, got %d", len(rollupSvc.aggregated))
	}
}

func TestRunOnceSkipsLockedRollups(t *testing.T) {
	syncerSvc := &syncerStub{}
	rollupSvc := &rollupStub{errFor: map[snowflake.ID]error{1: rollupdomain.ErrAggregationInProgress}}
	sched := newTestScheduler(t, &accountsStub{userIDs: []snowflake.ID{1, 2}}, syncerSvc, rollupSvc)

	if err := sched.SyncAndRollupJob(context.Background()); err != nil {
		t.Fatalf("lock contention is not a job failure: %v", err)
	}
	if len(rollupSvc.aggregated) != 2 {
		t.Fatalf("expected both aggregation attempts, got %d", len(rollupSvc.aggregated))
	}
}
