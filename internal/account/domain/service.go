package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type LinkRequest struct {
	Platform    string `json:"platform"`
	Handle      string `json:"handle"`
	AccessToken string `json:"access_token"`
}

type Service interface {
	Link(ctx context.Context, userID snowflake.ID, req LinkRequest) (*Account, error)
	List(ctx context.Context, userID snowflake.ID) ([]Account, error)
	Disconnect(ctx context.Context, userID snowflake.ID, platform string) error
}

// Repository is the read/write surface over social_accounts. The sync
// orchestrator depends on ListByUser only.
type Repository interface {
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Account, error)
	Upsert(ctx context.Context, account *Account) error
	DeleteByUserPlatform(ctx context.Context, userID snowflake.ID, platform string) (int64, error)
	DistinctUserIDs(ctx context.Context) ([]snowflake.ID, error)
}

var (
	ErrInvalidUser     = errors.New("invalid_user")
	ErrInvalidPlatform = errors.New("invalid_platform")
	ErrMissingHandle   = errors.New("missing_handle")
	ErrNotFound        = errors.New("account_not_found")
)
