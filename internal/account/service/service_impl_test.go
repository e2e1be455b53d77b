package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	"github.com/creatorpulse/creatorpulse/internal/account/repository"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAccountService(t *testing.T) (accountdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&accountdomain.Account{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	svc := New(Params{
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(db),
		Clock: clock.NewFakeClock(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)),
	})
	return svc, db, node
}

func TestLinkNormalizesPlatform(t *testing.T) {
	svc, _, node := setupAccountService(t)
	userID := node.Generate()

	account, err := svc.Link(context.Background(), userID, accountdomain.LinkRequest{
		Platform: "  Instagram ",
		Handle:   "creator",
	})
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if account.Platform != "instagram" {
		t.Fatalf("platform not normalized: %q", account.Platform)
	}
}

func TestLinkValidation(t *testing.T) {
	svc, _, node := setupAccountService(t)
	userID := node.Generate()

	if _, err := svc.Link(context.Background(), 0, accountdomain.LinkRequest{Platform: "tiktok", Handle: "x"}); !errors.Is(err, accountdomain.ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
	if _, err := svc.Link(context.Background(), userID, accountdomain.LinkRequest{Handle: "x"}); !errors.Is(err, accountdomain.ErrInvalidPlatform) {
		t.Fatalf("expected ErrInvalidPlatform, got %v", err)
	}
	if _, err := svc.Link(context.Background(), userID, accountdomain.LinkRequest{Platform: "tiktok"}); !errors.Is(err, accountdomain.ErrMissingHandle) {
		t.Fatalf("expected ErrMissingHandle, got %v", err)
	}
}

func TestRelinkSamePlatformUpserts(t *testing.T) {
	svc, db, node := setupAccountService(t)
	userID := node.Generate()

	if _, err := svc.Link(context.Background(), userID, accountdomain.LinkRequest{Platform: "tiktok", Handle: "old"}); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if _, err := svc.Link(context.Background(), userID, accountdomain.LinkRequest{Platform: "tiktok", Handle: "new"}); err != nil {
		t.Fatalf("second link: %v", err)
	}

	var rows []accountdomain.Account
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		t.Fatalf("load accounts: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected single account row, got %d", len(rows))
	}
	if rows[0].Handle != "new" {
		t.Fatalf("expected handle refreshed, got %q", rows[0].Handle)
	}
}

func TestDisconnect(t *testing.T) {
	svc, _, node := setupAccountService(t)
	userID := node.Generate()

	if _, err := svc.Link(context.Background(), userID, accountdomain.LinkRequest{Platform: "twitch", Handle: "creator"}); err != nil {
		t.Fatalf("link: %v", err)
	}

	if err := svc.Disconnect(context.Background(), userID, "Twitch"); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if err := svc.Disconnect(context.Background(), userID, "twitch"); !errors.Is(err, accountdomain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second disconnect, got %v", err)
	}

	accounts, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected no accounts after disconnect, got %d", len(accounts))
	}
}
