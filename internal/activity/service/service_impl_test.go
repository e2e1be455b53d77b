package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/creatorpulse/creatorpulse/internal/activity/domain"
	"github.com/creatorpulse/creatorpulse/internal/clock"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupActivityService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node, *clock.FakeClock) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&activitydomain.ActivityEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node := mustNode(t)
	fake := clock.NewFakeClock(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
	})
	return svc, db, node, fake
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}

func TestRecordDefaultsTimestamp(t *testing.T) {
	svc, db, node, fake := setupActivityService(t)
	userID := node.Generate()

	recorded, err := svc.Record(context.Background(), activitydomain.RecordRequest{
		Events: []activitydomain.EventInput{
			{UserID: userID.String(), Platform: "Instagram", EventType: activitydomain.EventTypeLike},
		},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if recorded != 1 {
		t.Fatalf("expected 1 recorded, got %d", recorded)
	}

	var row activitydomain.ActivityEvent
	if err := db.First(&row, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if !row.EventTimestamp.Equal(fake.Now()) {
		t.Fatalf("expected timestamp defaulted to %v, got %v", fake.Now(), row.EventTimestamp)
	}
	if row.Platform != "instagram" {
		t.Fatalf("platform not normalized: %q", row.Platform)
	}
}

func TestRecordKeepsExplicitTimestamp(t *testing.T) {
	svc, db, node, _ := setupActivityService(t)
	userID := node.Generate()
	at := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	_, err := svc.Record(context.Background(), activitydomain.RecordRequest{
		Events: []activitydomain.EventInput{
			{UserID: userID.String(), Platform: "tiktok", EventType: activitydomain.EventTypeComment, Timestamp: &at},
		},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	var row activitydomain.ActivityEvent
	if err := db.First(&row, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if !row.EventTimestamp.Equal(at) {
		t.Fatalf("expected %v, got %v", at, row.EventTimestamp)
	}
}

func TestRecordRejectsBadInput(t *testing.T) {
	svc, _, node, _ := setupActivityService(t)
	userID := node.Generate()

	cases := []struct {
		name string
		req  activitydomain.RecordRequest
		want error
	}{
		{"empty batch", activitydomain.RecordRequest{}, activitydomain.ErrEmptyEvents},
		{"bad user", activitydomain.RecordRequest{Events: []activitydomain.EventInput{
			{UserID: "not-a-user", Platform: "tiktok", EventType: activitydomain.EventTypeLike},
		}}, activitydomain.ErrInvalidUser},
		{"missing platform", activitydomain.RecordRequest{Events: []activitydomain.EventInput{
			{UserID: userID.String(), EventType: activitydomain.EventTypeLike},
		}}, activitydomain.ErrInvalidPlatform},
		{"unknown event type", activitydomain.RecordRequest{Events: []activitydomain.EventInput{
			{UserID: userID.String(), Platform: "tiktok", EventType: "wave"},
		}}, activitydomain.ErrInvalidEventType},
	}
	for _, tc := range cases {
		if _, err := svc.Record(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRecordBatchIsAllOrNothing(t *testing.T) {
	svc, db, node, _ := setupActivityService(t)
	userID := node.Generate()

	_, err := svc.Record(context.Background(), activitydomain.RecordRequest{
		Events: []activitydomain.EventInput{
			{UserID: userID.String(), Platform: "tiktok", EventType: activitydomain.EventTypeLike},
			{UserID: userID.String(), Platform: "tiktok", EventType: "wave"},
		},
	})
	if !errors.Is(err, activitydomain.ErrInvalidEventType) {
		t.Fatalf("expected ErrInvalidEventType, got %v", err)
	}

	var count int64
	if err := db.Model(&activitydomain.ActivityEvent{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected batch must write nothing, found %d rows", count)
	}
}

func TestListPaginates(t *testing.T) {
	svc, _, node, fake := setupActivityService(t)
	userID := node.Generate()

	for i := 0; i < 5; i++ {
		_, err := svc.Record(context.Background(), activitydomain.RecordRequest{
			Events: []activitydomain.EventInput{
				{UserID: userID.String(), Platform: "twitch", EventType: activitydomain.EventTypeLike},
			},
		})
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		fake.Advance(time.Second)
	}

	req := activitydomain.ListRequest{UserID: userID.String()}
	req.PageSize = 2

	first, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("list first page: %v", err)
	}
	if len(first.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(first.Events))
	}
	if !first.HasMore || first.NextPageToken == "" {
		t.Fatalf("expected more pages, got %+v", first.PageInfo)
	}

	req.PageToken = first.NextPageToken
	second, err := svc.List(context.Background(), req)
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if len(second.Events) != 2 {
		t.Fatalf("expected 2 events on second page, got %d", len(second.Events))
	}
	if second.Events[0].ID == first.Events[0].ID {
		t.Fatal("second page repeated the first")
	}
}

func TestRecordPostEvent(t *testing.T) {
	svc, db, node, fake := setupActivityService(t)
	userID := node.Generate()
	postedAt := time.Date(2024, 6, 9, 8, 0, 0, 0, time.UTC)

	if err := svc.RecordPostEvent(context.Background(), userID, "instagram", "p1", postedAt); err != nil {
		t.Fatalf("record post event: %v", err)
	}

	var row activitydomain.ActivityEvent
	if err := db.First(&row, "user_id = ?", userID).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if row.EventType != activitydomain.EventTypePost {
		t.Fatalf("expected post event, got %s", row.EventType)
	}
	if !row.EventTimestamp.Equal(postedAt) {
		t.Fatalf("expected %v, got %v", postedAt, row.EventTimestamp)
	}
	if row.Metadata["post_id"] != "p1" {
		t.Fatalf("expected post_id metadata, got %v", row.Metadata)
	}

	// Zero posted_at falls back to ingestion time.
	if err := svc.RecordPostEvent(context.Background(), userID, "instagram", "p2", time.Time{}); err != nil {
		t.Fatalf("record post event: %v", err)
	}
	var fallback activitydomain.ActivityEvent
	if err := db.Where("user_id = ?", userID).Order("id DESC").First(&fallback).Error; err != nil {
		t.Fatalf("load fallback event: %v", err)
	}
	if !fallback.EventTimestamp.Equal(fake.Now()) {
		t.Fatalf("expected clock fallback %v, got %v", fake.Now(), fallback.EventTimestamp)
	}
}
