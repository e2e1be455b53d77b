// Package domain contains the rollup tables the aggregation engine maintains.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// DailyMetric is one row per (user, platform, date). Recomputed and
// overwritten on every aggregation run, never incremented in place.
type DailyMetric struct {
	UserID            snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Platform          string       `gorm:"primaryKey;type:text" json:"platform"`
	Date              string       `gorm:"primaryKey;type:text" json:"date"`
	CommentsCount     int64        `gorm:"not null" json:"comments_count"`
	PostsCount        int64        `gorm:"not null" json:"posts_count"`
	LikesCount        int64        `gorm:"not null" json:"likes_count"`
	SessionsCount     int64        `gorm:"not null" json:"sessions_count"`
	TotalTimeSeconds  int64        `gorm:"not null" json:"total_time_seconds"`
	AvgSessionSeconds float64      `gorm:"not null" json:"avg_session_seconds"`
	UpdatedAt         time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (DailyMetric) TableName() string { return "social_metrics_daily" }

// LifetimeMetric is one row per (user, platform); a full recompute like the
// daily rows.
type LifetimeMetric struct {
	UserID           snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Platform         string       `gorm:"primaryKey;type:text" json:"platform"`
	CommentsCount    int64        `gorm:"not null" json:"comments_count"`
	PostsCount       int64        `gorm:"not null" json:"posts_count"`
	LikesCount       int64        `gorm:"not null" json:"likes_count"`
	SessionsCount    int64        `gorm:"not null" json:"sessions_count"`
	TotalTimeSeconds int64        `gorm:"not null" json:"total_time_seconds"`
	UpdatedAt        time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (LifetimeMetric) TableName() string { return "social_metrics_totals" }

type Service interface {
	// Aggregate recomputes all rollup rows for the user from the full event
	// log. Idempotent; safe to retry in full.
	Aggregate(ctx context.Context, userID snowflake.ID) error
	ListDaily(ctx context.Context, userID snowflake.ID, platform string) ([]DailyMetric, error)
	ListTotals(ctx context.Context, userID snowflake.ID) ([]LifetimeMetric, error)
}

var (
	ErrInvalidUser           = errors.New("invalid_user")
	ErrAggregationInProgress = errors.New("aggregation_in_progress")
)
