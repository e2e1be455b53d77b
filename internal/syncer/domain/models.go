// Package domain defines the sync orchestrator contract.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
)

// SyncReport lists every connected account's outcome, in account enumeration
// order, so a caller can see exactly which platforms succeeded and which
// failed.
type SyncReport struct {
	Status    string                      `json:"status"`
	Synced    []platformdomain.SyncResult `json:"synced"`
	Timestamp time.Time                   `json:"timestamp"`
}

const (
	StatusCompleted  = "completed"
	StatusNoAccounts = "no_accounts"
)

type Service interface {
	SyncAllAccounts(ctx context.Context, userID snowflake.ID) (SyncReport, error)
}

var ErrInvalidUser = errors.New("invalid_user")
