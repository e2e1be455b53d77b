// Package domain contains persistence models for raw activity ingestion.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Event types recognized by the aggregation engine. Unknown types are stored
// but contribute nothing to rollups.
const (
	EventTypeComment      = "comment"
	EventTypePost         = "post"
	EventTypeLike         = "like"
	EventTypeSessionStart = "session_start"
	EventTypeSessionEnd   = "session_end"
)

// MetadataDurationKey carries session length on session_end events.
const MetadataDurationKey = "duration_seconds"

// ActivityEvent is a single row in the append-only event log. Immutable once
// written; dedup, if ever needed, is a read-time concern.
type ActivityEvent struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	UserID         snowflake.ID      `gorm:"not null;index:idx_social_activity_user" json:"user_id"`
	Platform       string            `gorm:"type:text;not null" json:"platform"`
	EventType      string            `gorm:"type:text;not null" json:"event_type"`
	EventTimestamp time.Time         `gorm:"not null" json:"event_timestamp"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null" json:"created_at"`
}

// TableName sets the database table name.
func (ActivityEvent) TableName() string { return "social_activity" }

// KnownEventType reports whether t is one of the recognized event types.
func KnownEventType(t string) bool {
	switch t {
	case EventTypeComment, EventTypePost, EventTypeLike, EventTypeSessionStart, EventTypeSessionEnd:
		return true
	default:
		return false
	}
}
