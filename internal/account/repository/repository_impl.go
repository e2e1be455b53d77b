package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) accountdomain.Repository {
	return &repo{db: db}
}

// ListByUser returns accounts in stable creation order; the orchestrator's
// report preserves this order.
func (r *repo) ListByUser(ctx context.Context, userID snowflake.ID) ([]accountdomain.Account, error) {
	var accounts []accountdomain.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repo) Upsert(ctx context.Context, account *accountdomain.Account) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"handle",
			"access_token",
			"updated_at",
		}),
	}).Create(account).Error
}

func (r *repo) DeleteByUserPlatform(ctx context.Context, userID snowflake.ID, platform string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND platform = ?", userID, platform).
		Delete(&accountdomain.Account{})
	return result.RowsAffected, result.Error
}

func (r *repo) DistinctUserIDs(ctx context.Context) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := r.db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Distinct("user_id").
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
