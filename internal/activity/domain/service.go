package domain

import (
	"context"
	"errors"
	"time"

	"github.com/creatorpulse/creatorpulse/pkg/db/pagination"
)

// EventInput is one event as submitted by a caller. Timestamp is optional and
// defaults to ingestion time.
type EventInput struct {
	UserID    string         `json:"user_id"`
	Platform  string         `json:"platform"`
	EventType string         `json:"event_type"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type RecordRequest struct {
	Events []EventInput `json:"events"`
}

type ListRequest struct {
	UserID   string `form:"user_id"`
	Platform string `form:"platform"`
	pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	Events []ActivityEvent `json:"events"`
}

type Service interface {
	Record(ctx context.Context, req RecordRequest) (int, error)
	List(ctx context.Context, req ListRequest) (ListResponse, error)
}

var (
	ErrEmptyEvents      = errors.New("empty_events")
	ErrInvalidUser      = errors.New("invalid_user")
	ErrInvalidPlatform  = errors.New("invalid_platform")
	ErrInvalidEventType = errors.New("invalid_event_type")
)
