package adapters

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	platformdomain "github.com/creatorpulse/creatorpulse/internal/platform/domain"
	"go.uber.org/zap"
)

// adapter is the shared implementation behind every catalog entry: validate
// credentials, fetch raw payloads, normalize, upsert, report. All failures
// are converted to SyncResult.Error inside this type.
type adapter struct {
	descriptor Descriptor
	fetcher    Fetcher
	store      platformdomain.Store
	recorder   platformdomain.Recorder
	log        *zap.Logger
}

func newAdapter(d Descriptor, fetcher Fetcher, store platformdomain.Store, recorder platformdomain.Recorder, log *zap.Logger) *adapter {
	return &adapter{
		descriptor: d,
		fetcher:    fetcher,
		store:      store,
		recorder:   recorder,
		log:        log.Named("adapter." + d.Name),
	}
}

func (a *adapter) Platform() string {
	return a.descriptor.Name
}

func (a *adapter) Sync(ctx context.Context, account accountdomain.Account) platformdomain.SyncResult {
	result := platformdomain.SyncResult{Platform: a.descriptor.Name}

	if msg := a.missingCredential(account); msg != "" {
		result.Error = msg
		return result
	}

	rawProfile, err := a.fetcher.FetchProfile(ctx, a.descriptor, account)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	rawPosts, err := a.fetcher.FetchPosts(ctx, a.descriptor, account)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	profile := a.normalizeProfile(rawProfile)
	if err := a.store.UpsertProfile(ctx, account.UserID, a.descriptor.Name, profile); err != nil {
		result.Error = err.Error()
		return result
	}

	synced := 0
	for _, raw := range rawPosts {
		post := a.normalizePost(raw)
		if post.PostID == "" {
			continue
		}
		created, err := a.store.UpsertPost(ctx, account.UserID, post)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		synced++

		if created && a.recorder != nil {
			if err := a.recorder.RecordPostEvent(ctx, account.UserID, post.Platform, post.PostID, post.PostedAt); err != nil {
				a.log.Warn("failed to record post event",
					zap.String("post_id", post.PostID),
					zap.Error(err),
				)
			}
		}
	}

	result.Updated = true
	result.PostsSynced = synced
	result.MetricsWritten = true
	return result
}

func (a *adapter) missingCredential(account accountdomain.Account) string {
	switch a.descriptor.Credential {
	case CredentialAccessToken:
		if strings.TrimSpace(account.AccessToken) == "" {
			return "Missing access_token"
		}
	default:
		if strings.TrimSpace(account.Handle) == "" {
			return "Missing handle"
		}
	}
	return ""
}

func (a *adapter) normalizeProfile(raw map[string]any) platformdomain.Profile {
	fields := a.descriptor.Profile
	return platformdomain.Profile{
		Username:  stringValue(raw, fields.Username),
		AvatarURL: stringValue(raw, fields.AvatarURL),
		Followers: countValue(raw, fields.Followers),
		Following: countValue(raw, fields.Following),
	}
}

func (a *adapter) normalizePost(raw map[string]any) platformdomain.Post {
	fields := a.descriptor.Posts
	return platformdomain.Post{
		Platform: a.descriptor.Name,
		PostID:   stringValue(raw, fields.ID),
		Caption:  stringValue(raw, fields.Caption),
		MediaURL: stringValue(raw, fields.MediaURL),
		Likes:    countValue(raw, fields.Likes),
		Comments: countValue(raw, fields.Comments),
		PostedAt: timeValue(raw, fields.PostedAt),
	}
}

func stringValue(raw map[string]any, key string) string {
	if raw == nil || key == "" {
		return ""
	}
	switch cast := raw[key].(type) {
	case string:
		return strings.TrimSpace(cast)
	case float64:
		return strconv.FormatInt(int64(cast), 10)
	case json.Number:
		return cast.String()
	default:
		return ""
	}
}

func countValue(raw map[string]any, key string) int64 {
	if raw == nil || key == "" {
		return 0
	}
	switch cast := raw[key].(type) {
	case float64:
		return int64(cast)
	case int64:
		return cast
	case int:
		return int64(cast)
	case json.Number:
		parsed, err := cast.Int64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(cast), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func timeValue(raw map[string]any, key string) time.Time {
	if raw == nil || key == "" {
		return time.Time{}
	}
	switch cast := raw[key].(type) {
	case string:
		value := strings.TrimSpace(cast)
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return parsed.UTC()
		}
		if parsed, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
			return parsed.UTC()
		}
		return time.Time{}
	case float64:
		if cast <= 0 {
			return time.Time{}
		}
		return time.Unix(int64(cast), 0).UTC()
	default:
		return time.Time{}
	}
}
