package service

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/creatorpulse/creatorpulse/internal/activity/domain"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	obsmetrics "github.com/creatorpulse/creatorpulse/internal/observability/metrics"
	"github.com/creatorpulse/creatorpulse/internal/ratelimit"
	rollupdomain "github.com/creatorpulse/creatorpulse/internal/rollup/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	scanBatchSize = 500
	lockTTL       = 2 * time.Minute
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Locker  *ratelimit.Locker   `optional:"true"`
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	locker  *ratelimit.Locker
	metrics *obsmetrics.Metrics
}

func New(p Params) rollupdomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("rollup.service"),
		clock:   p.Clock,
		locker:  p.Locker,
		metrics: p.Metrics,
	}
}

type bucket struct {
	comments  int64
	posts     int64
	likes     int64
	sessions  int64
	totalTime int64
}

type dailyKey struct {
	platform string
	date     string
}

// Aggregate folds the user's full event log into per-platform-per-day and
// per-platform lifetime rows in one pass, then upserts both inside a single
// transaction. A failed run leaves the previous rollup intact and is safe to
// retry because the computation is a recompute, not a delta.
func (s *Service) Aggregate(ctx context.Context, userID snowflake.ID) error {
	if userID == 0 {
		return rollupdomain.ErrInvalidUser
	}

	release, err := s.acquireUserLock(ctx, userID)
	if err != nil {
		s.countRun("locked")
		return err
	}
	defer release()

	started := time.Now()

	daily := map[dailyKey]*bucket{}
	totals := map[string]*bucket{}

	var events []activitydomain.ActivityEvent
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		FindInBatches(&events, scanBatchSize, func(tx *gorm.DB, batch int) error {
			for _, event := range events {
				s.fold(daily, totals, event)
			}
			return nil
		}).Error
	if err != nil {
		s.countRun("error")
		return err
	}

	now := s.clock.Now()
	dailyRows := buildDailyRows(userID, daily, now)
	totalRows := buildTotalRows(userID, totals, now)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(dailyRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"comments_count",
					"posts_count",
					"likes_count",
					"sessions_count",
					"total_time_seconds",
					"avg_session_seconds",
					"updated_at",
				}),
			}).Create(&dailyRows).Error; err != nil {
				return err
			}
		}
		if len(totalRows) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"comments_count",
					"posts_count",
					"likes_count",
					"sessions_count",
					"total_time_seconds",
					"updated_at",
				}),
			}).Create(&totalRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.countRun("error")
		return err
	}

	s.countRun("ok")
	if s.metrics != nil {
		s.metrics.AggregationTime.Observe(time.Since(started).Seconds())
	}
	s.log.Info("aggregation completed",
		zap.String("user_id", userID.String()),
		zap.Int("daily_rows", len(dailyRows)),
		zap.Int("platforms", len(totalRows)),
	)
	return nil
}

// fold applies one event to both running maps. The grouping is a commutative
// sum, so event iteration order does not matter.
func (s *Service) fold(daily map[dailyKey]*bucket, totals map[string]*bucket, event activitydomain.ActivityEvent) {
	if !activitydomain.KnownEventType(event.EventType) {
		return
	}

	date := event.EventTimestamp.UTC().Format("2006-01-02")
	key := dailyKey{platform: event.Platform, date: date}

	day := daily[key]
	if day == nil {
		day = &bucket{}
		daily[key] = day
	}
	total := totals[event.Platform]
	if total == nil {
		total = &bucket{}
		totals[event.Platform] = total
	}

	switch event.EventType {
	case activitydomain.EventTypeComment:
		day.comments++
		total.comments++
	case activitydomain.EventTypePost:
		day.posts++
		total.posts++
	case activitydomain.EventTypeLike:
		day.likes++
		total.likes++
	case activitydomain.EventTypeSessionStart:
		day.sessions++
		total.sessions++
	case activitydomain.EventTypeSessionEnd:
		duration := durationSeconds(event.Metadata)
		day.totalTime += duration
		total.totalTime += duration
	}
}

func buildDailyRows(userID snowflake.ID, daily map[dailyKey]*bucket, now time.Time) []rollupdomain.DailyMetric {
	rows := make([]rollupdomain.DailyMetric, 0, len(daily))
	for key, b := range daily {
		rows = append(rows, rollupdomain.DailyMetric{
			UserID:            userID,
			Platform:          key.platform,
			Date:              key.date,
			CommentsCount:     b.comments,
			PostsCount:        b.posts,
			LikesCount:        b.likes,
			SessionsCount:     b.sessions,
			TotalTimeSeconds:  b.totalTime,
			AvgSessionSeconds: avgSession(b),
			UpdatedAt:         now,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Platform != rows[j].Platform {
			return rows[i].Platform < rows[j].Platform
		}
		return rows[i].Date < rows[j].Date
	})
	return rows
}

func buildTotalRows(userID snowflake.ID, totals map[string]*bucket, now time.Time) []rollupdomain.LifetimeMetric {
	rows := make([]rollupdomain.LifetimeMetric, 0, len(totals))
	for platform, b := range totals {
		rows = append(rows, rollupdomain.LifetimeMetric{
			UserID:           userID,
			Platform:         platform,
			CommentsCount:    b.comments,
			PostsCount:       b.posts,
			LikesCount:       b.likes,
			SessionsCount:    b.sessions,
			TotalTimeSeconds: b.totalTime,
			UpdatedAt:        now,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Platform < rows[j].Platform
	})
	return rows
}

// avgSession never divides by zero: a bucket with session time but no
// session_start events reports 0.
func avgSession(b *bucket) float64 {
	if b.sessions <= 0 {
		return 0
	}
	return float64(b.totalTime) / float64(b.sessions)
}

func durationSeconds(metadata map[string]any) int64 {
	if metadata == nil {
		return 0
	}
	value, ok := metadata[activitydomain.MetadataDurationKey]
	if !ok {
		return 0
	}
	switch cast := value.(type) {
	case float64:
		return int64(cast)
	case int64:
		return cast
	case int:
		return int64(cast)
	case json.Number:
		parsed, err := cast.Int64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseInt(cast, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// acquireUserLock serializes same-user recomputes when a locker is
// configured. Without one, concurrent runs converge to the same rows anyway
// (last writer wins on a full recompute).
func (s *Service) acquireUserLock(ctx context.Context, userID snowflake.ID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	key := "rollup:user:" + userID.String()
	token, ok, err := s.locker.TryLock(ctx, key, lockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, rollupdomain.ErrAggregationInProgress
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.locker.Release(releaseCtx, key, token); err != nil {
			s.log.Warn("failed to release rollup lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (s *Service) countRun(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.AggregationRuns.WithLabelValues(status).Inc()
}

func (s *Service) ListDaily(ctx context.Context, userID snowflake.ID, platform string) ([]rollupdomain.DailyMetric, error) {
	if userID == 0 {
		return nil, rollupdomain.ErrInvalidUser
	}
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	var rows []rollupdomain.DailyMetric
	err := query.Order("platform ASC, date ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) ListTotals(ctx context.Context, userID snowflake.ID) ([]rollupdomain.LifetimeMetric, error) {
	if userID == 0 {
		return nil, rollupdomain.ErrInvalidUser
	}
	var rows []rollupdomain.LifetimeMetric
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("platform ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
