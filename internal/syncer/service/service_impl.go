package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	"github.com/creatorpulse/creatorpulse/internal/config"
	obsmetrics "github.com/creatorpulse/creatorpulse/internal/observability/metrics"
	"github.com/creatorpulse/creatorpulse/internal/platform/adapters"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	syncerdomain "github.com/creatorpulse/creatorpulse/internal/syncer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Clock    clock.Clock
	Accounts accountdomain.Repository
	Registry *adapters.Registry
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	accounts accountdomain.Repository
	registry *adapters.Registry
	metrics  *obsmetrics.Metrics
	workers  int
}

func New(p Params) syncerdomain.Service {
	workers := p.Cfg.SyncWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		log:      p.Log.Named("syncer.service"),
		clock:    p.Clock,
		accounts: p.Accounts,
		registry: p.Registry,
		metrics:  p.Metrics,
		workers:  workers,
	}
}

// SyncAllAccounts fans out to the dispatcher once per connected account.
// Accounts are independent, so the fan-out is concurrent; results land at
// their account's enumeration index, preserving report order. A per-account
// failure degrades that one entry, never the batch.
func (s *Service) SyncAllAccounts(ctx context.Context, userID snowflake.ID) (syncerdomain.SyncReport, error) {
	if userID == 0 {
		return syncerdomain.SyncReport{}, syncerdomain.ErrInvalidUser
	}

	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		s.countRun("error")
		return syncerdomain.SyncReport{}, err
	}

	report := syncerdomain.SyncReport{
		Status:    syncerdomain.StatusCompleted,
		Synced:    make([]platformdomain.SyncResult, 0),
		Timestamp: s.clock.Now(),
	}
	if len(accounts) == 0 {
		report.Status = syncerdomain.StatusNoAccounts
		s.countRun("ok")
		return report, nil
	}

	results := make([]platformdomain.SyncResult, len(accounts))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i, account := range accounts {
		i, account := i, account
		group.Go(func() error {
			results[i] = s.registry.Dispatch(groupCtx, account.Platform, account)
			return nil
		})
	}
	// Dispatch never returns an error; every failure is data in its slot.
	_ = group.Wait()

	for _, result := range results {
		s.countAccount(result)
	}

	report.Synced = results
	s.countRun("ok")
	s.log.Info("sync run completed",
		zap.String("user_id", userID.String()),
		zap.Int("accounts", len(accounts)),
	)
	return report, nil
}

func (s *Service) countRun(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.SyncRuns.WithLabelValues(status).Inc()
}

func (s *Service) countAccount(result platformdomain.SyncResult) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if result.Error != "" {
		outcome = "error"
	}
	s.metrics.AccountsSynced.WithLabelValues(result.Platform, outcome).Inc()
}
