// Package domain defines the normalized data model every platform adapter
// produces and the adapter contract itself.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
)

// Profile is the normalized account profile. Fields absent from a source are
// zero values, never omitted.
type Profile struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Followers int64  `json:"followers"`
	Following int64  `json:"following"`
}

// Post is one normalized piece of content, keyed by (platform, post_id).
type Post struct {
	Platform string    `json:"platform"`
	PostID   string    `json:"post_id"`
	Caption  string    `json:"caption"`
	MediaURL string    `json:"media_url"`
	Likes    int64     `json:"likes"`
	Comments int64     `json:"comments"`
	PostedAt time.Time `json:"posted_at"`
}

// SyncResult is the uniform per-account outcome. Adapter failures are data
// here, never propagated errors; one platform's outage must not abort the
// other connected platforms.
type SyncResult struct {
	Platform       string `json:"platform"`
	Updated        bool   `json:"updated"`
	PostsSynced    int    `json:"posts_synced,omitempty"`
	MetricsWritten bool   `json:"metrics_written,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Adapter fetches and normalizes one platform's account activity.
type Adapter interface {
	Platform() string
	Sync(ctx context.Context, account accountdomain.Account) SyncResult
}

// Store is the adapter write target for normalized data. UpsertPost reports
// whether the row was newly created so the adapter can emit a post event.
type Store interface {
	UpsertProfile(ctx context.Context, userID snowflake.ID, platform string, profile Profile) error
	UpsertPost(ctx context.Context, userID snowflake.ID, post Post) (created bool, err error)
}

// Recorder receives activity events derived during a sync.
type Recorder interface {
	RecordPostEvent(ctx context.Context, userID snowflake.ID, platform, postID string, postedAt time.Time) error
}
