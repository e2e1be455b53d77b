// Package domain contains persistence models for normalized profiles and posts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SocialProfile is one row per (user, platform), overwritten wholesale on
// every successful sync. Last write wins; no history.
type SocialProfile struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;uniqueIndex:idx_social_profiles_user_platform" json:"user_id"`
	Platform  string       `gorm:"type:text;not null;uniqueIndex:idx_social_profiles_user_platform" json:"platform"`
	Username  string       `gorm:"type:text;not null" json:"username"`
	AvatarURL string       `gorm:"type:text;not null" json:"avatar_url"`
	Followers int64        `gorm:"not null" json:"followers"`
	Following int64        `gorm:"not null" json:"following"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (SocialProfile) TableName() string { return "social_profiles" }

// SocialPost is keyed by (platform, post_id); re-syncing the same post
// updates its counters, never duplicates it.
type SocialPost struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;index" json:"user_id"`
	Platform  string       `gorm:"type:text;not null;uniqueIndex:idx_social_posts_platform_post" json:"platform"`
	PostID    string       `gorm:"type:text;not null;uniqueIndex:idx_social_posts_platform_post" json:"post_id"`
	Caption   string       `gorm:"type:text;not null" json:"caption"`
	MediaURL  string       `gorm:"type:text;not null" json:"media_url"`
	Likes     int64        `gorm:"not null" json:"likes"`
	Comments  int64        `gorm:"not null" json:"comments"`
	PostedAt  time.Time    `json:"posted_at"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (SocialPost) TableName() string { return "social_posts" }
