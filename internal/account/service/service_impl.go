package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  accountdomain.Repository
	Clock clock.Clock
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	repo  accountdomain.Repository
	clock clock.Clock
}

func New(p Params) accountdomain.Service {
	return &Service{
		log:   p.Log.Named("account.service"),
		genID: p.GenID,
		repo:  p.Repo,
		clock: p.Clock,
	}
}

func (s *Service) Link(ctx context.Context, userID snowflake.ID, req accountdomain.LinkRequest) (*accountdomain.Account, error) {
	if userID == 0 {
		return nil, accountdomain.ErrInvalidUser
	}
	platform := strings.ToLower(strings.TrimSpace(req.Platform))
	if platform == "" {
		return nil, accountdomain.ErrInvalidPlatform
	}
	handle := strings.TrimSpace(req.Handle)
	token := strings.TrimSpace(req.AccessToken)
	if handle == "" && token == "" {
		return nil, accountdomain.ErrMissingHandle
	}

	now := s.clock.Now()
	account := &accountdomain.Account{
		ID:          s.genID.Generate(),
		UserID:      userID,
		Platform:    platform,
		Handle:      handle,
		AccessToken: token,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Upsert(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("account linked",
		zap.String("user_id", userID.String()),
		zap.String("platform", platform),
	)
	return account, nil
}

func (s *Service) List(ctx context.Context, userID snowflake.ID) ([]accountdomain.Account, error) {
	if userID == 0 {
		return nil, accountdomain.ErrInvalidUser
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Disconnect(ctx context.Context, userID snowflake.ID, platform string) error {
	if userID == 0 {
		return accountdomain.ErrInvalidUser
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		return accountdomain.ErrInvalidPlatform
	}

	deleted, err := s.repo.DeleteByUserPlatform(ctx, userID, platform)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return accountdomain.ErrNotFound
	}
	return nil
}
