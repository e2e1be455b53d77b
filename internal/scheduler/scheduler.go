package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	rollupdomain "github.com/creatorpulse/creatorpulse/internal/rollup/domain"
	syncerdomain "github.com/creatorpulse/creatorpulse/internal/syncer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	Clock     clock.Clock
	Accounts  accountdomain.Repository
	SyncerSvc syncerdomain.Service
	RollupSvc rollupdomain.Service
	Config    Config `optional:"true"`
}

// Scheduler walks every user with at least one connected account, syncs
// their platforms, then rebuilds their rollups.
type Scheduler struct {
	log       *zap.Logger
	cfg       Config
	clock     clock.Clock
	accounts  accountdomain.Repository
	syncerSvc syncerdomain.Service
	rollupSvc rollupdomain.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.Accounts == nil || p.SyncerSvc == nil || p.RollupSvc == nil {
		return nil, errors.New("invalid_scheduler_config")
	}
	return &Scheduler{
		log:       p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:       p.Config.withDefaults(),
		clock:     p.Clock,
		accounts:  p.Accounts,
		syncerSvc: p.SyncerSvc,
		rollupSvc: p.RollupSvc,
	}, nil
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	log := s.log.With(zap.String("job", name))
	log.Info("job started")

	err := fn(ctx)
	log.Info("job finished", zap.Duration("elapsed", time.Since(start)))
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		log.Warn("job timed out",
			zap.Duration("timeout", s.cfg.JobTimeout),
			zap.Error(err),
		)
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	return s.runJob(parent, "sync_and_rollup", s.SyncAndRollupJob)
}

// SyncAndRollupJob runs one pass: sync then aggregate per user. A failing
// user never blocks the rest of the batch.
func (s *Scheduler) SyncAndRollupJob(ctx context.Context) error {
	userIDs, err := s.accounts.DistinctUserIDs(ctx)
	if err != nil {
		return err
	}
	if len(userIDs) > s.cfg.MaxUsers {
		userIDs = userIDs[:s.cfg.MaxUsers]
	}

	var jobErr error
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return errors.Join(jobErr, ctx.Err())
		}

		report, err := s.syncerSvc.SyncAllAccounts(ctx, userID)
		if err != nil {
			jobErr = errors.Join(jobErr, err)
			s.log.Warn("scheduled sync failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			continue
		}
		if report.Status == syncerdomain.StatusNoAccounts {
			continue
		}

		if err := s.rollupSvc.Aggregate(ctx, userID); err != nil {
			if errors.Is(err, rollupdomain.ErrAggregationInProgress) {
				s.log.Info("rollup skipped, another run holds the lock",
					zap.String("user_id", userID.String()),
				)
				continue
			}
			jobErr = errors.Join(jobErr, err)
			s.log.Warn("scheduled rollup failed",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	return jobErr
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
