// Package domain contains persistence models for linked social accounts.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Account is one connected external source for a user. It is written by the
// connect flow and read-only input to the sync pipeline.
type Account struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID      snowflake.ID `gorm:"not null;uniqueIndex:idx_social_accounts_user_platform" json:"user_id"`
	Platform    string       `gorm:"type:text;not null;uniqueIndex:idx_social_accounts_user_platform" json:"platform"`
	Handle      string       `gorm:"type:text" json:"handle"`
	AccessToken string       `gorm:"type:text" json:"-"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "social_accounts" }
