package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	socialdomain "github.com/creatorpulse/creatorpulse/internal/social/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type store struct {
	db    *gorm.DB
	genID *snowflake.Node
	clock clock.Clock
}

// Provide returns the adapter write target over social_profiles and
// social_posts.
func Provide(db *gorm.DB, genID *snowflake.Node, clk clock.Clock) platformdomain.Store {
	return &store{db: db, genID: genID, clock: clk}
}

func (s *store) UpsertProfile(ctx context.Context, userID snowflake.ID, platform string, profile platformdomain.Profile) error {
	now := s.clock.Now()
	row := socialdomain.SocialProfile{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Platform:  platform,
		Username:  profile.Username,
		AvatarURL: profile.AvatarURL,
		Followers: profile.Followers,
		Following: profile.Following,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username",
			"avatar_url",
			"followers",
			"following",
			"updated_at",
		}),
	}).Create(&row).Error
}

func (s *store) UpsertPost(ctx context.Context, userID snowflake.ID, post platformdomain.Post) (bool, error) {
	now := s.clock.Now()
	row := socialdomain.SocialPost{
		ID:        s.genID.Generate(),
		UserID:    userID,
		Platform:  post.Platform,
		PostID:    post.PostID,
		Caption:   post.Caption,
		MediaURL:  post.MediaURL,
		Likes:     post.Likes,
		Comments:  post.Comments,
		PostedAt:  post.PostedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Insert-or-skip first so the caller can tell a new post from a re-sync.
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "post_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	err := s.db.WithContext(ctx).
		Model(&socialdomain.SocialPost{}).
		Where("platform = ? AND post_id = ?", post.Platform, post.PostID).
		Updates(map[string]any{
			"caption":    post.Caption,
			"media_url":  post.MediaURL,
			"likes":      post.Likes,
			"comments":   post.Comments,
			"updated_at": now,
		}).Error
	return false, err
}
