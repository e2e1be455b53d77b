package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/creatorpulse/creatorpulse/internal/activity/domain"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	obsmetrics "github.com/creatorpulse/creatorpulse/internal/observability/metrics"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	"github.com/creatorpulse/creatorpulse/pkg/db/option"
	"github.com/creatorpulse/creatorpulse/pkg/db/pagination"
	"github.com/creatorpulse/creatorpulse/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    repository.Repository[activitydomain.ActivityEvent]
	metrics *obsmetrics.Metrics
}

func New(p Params) *Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("activity.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    repository.ProvideStore[activitydomain.ActivityEvent](p.DB),
		metrics: p.Metrics,
	}
}

// Record appends events to the log. No merge or dedup at write time.
func (s *Service) Record(ctx context.Context, req activitydomain.RecordRequest) (int, error) {
	if len(req.Events) == 0 {
		return 0, activitydomain.ErrEmptyEvents
	}

	now := s.clock.Now()
	rows := make([]*activitydomain.ActivityEvent, 0, len(req.Events))
	for _, input := range req.Events {
		row, err := s.buildEvent(input, now)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	if err := s.repo.BatchCreate(ctx, rows); err != nil {
		return 0, err
	}

	if s.metrics != nil {
		for _, row := range rows {
			s.metrics.EventsIngested.WithLabelValues(row.EventType).Inc()
		}
	}
	return len(rows), nil
}

func (s *Service) buildEvent(input activitydomain.EventInput, now time.Time) (*activitydomain.ActivityEvent, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(input.UserID))
	if err != nil || userID == 0 {
		return nil, activitydomain.ErrInvalidUser
	}
	platform := strings.ToLower(strings.TrimSpace(input.Platform))
	if platform == "" {
		return nil, activitydomain.ErrInvalidPlatform
	}
	eventType := strings.TrimSpace(input.EventType)
	if !activitydomain.KnownEventType(eventType) {
		return nil, activitydomain.ErrInvalidEventType
	}

	timestamp := now
	if input.Timestamp != nil && !input.Timestamp.IsZero() {
		timestamp = input.Timestamp.UTC()
	}

	row := &activitydomain.ActivityEvent{
		ID:             s.genID.Generate(),
		UserID:         userID,
		Platform:       platform,
		EventType:      eventType,
		EventTimestamp: timestamp,
		CreatedAt:      now,
	}
	if input.Metadata != nil {
		row.Metadata = datatypes.JSONMap(input.Metadata)
	}
	return row, nil
}

func (s *Service) List(ctx context.Context, req activitydomain.ListRequest) (activitydomain.ListResponse, error) {
	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil || userID == 0 {
		return activitydomain.ListResponse{}, activitydomain.ErrInvalidUser
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	filter := &activitydomain.ActivityEvent{UserID: userID}
	if platform := strings.ToLower(strings.TrimSpace(req.Platform)); platform != "" {
		filter.Platform = platform
	}

	items, err := s.repo.Find(ctx, filter,
		option.ApplyPagination(pagination.Pagination{
			PageToken: req.PageToken,
			PageSize:  pageSize,
		}),
	)
	if err != nil {
		return activitydomain.ListResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(row *activitydomain.ActivityEvent) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        row.ID.String(),
			CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	events := make([]activitydomain.ActivityEvent, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		events = append(events, *item)
	}

	return activitydomain.ListResponse{
		PageInfo: *pageInfo,
		Events:   events,
	}, nil
}

// RecordPostEvent implements the adapter-facing recorder: one post event per
// newly discovered post.
func (s *Service) RecordPostEvent(ctx context.Context, userID snowflake.ID, platform, postID string, postedAt time.Time) error {
	timestamp := postedAt.UTC()
	if timestamp.IsZero() {
		timestamp = s.clock.Now()
	}
	row := &activitydomain.ActivityEvent{
		ID:             s.genID.Generate(),
		UserID:         userID,
		Platform:       platform,
		EventType:      activitydomain.EventTypePost,
		EventTimestamp: timestamp,
		Metadata:       datatypes.JSONMap{"post_id": postID},
		CreatedAt:      s.clock.Now(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.EventsIngested.WithLabelValues(activitydomain.EventTypePost).Inc()
	}
	return nil
}

var (
	_ activitydomain.Service  = (*Service)(nil)
	_ platformdomain.Recorder = (*Service)(nil)
)
