package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
)

// Fetcher is the effectful boundary of an adapter: raw profile and activity
// retrieval. Real integrations and test fakes both implement it.
type Fetcher interface {
	FetchProfile(ctx context.Context, d Descriptor, account accountdomain.Account) (map[string]any, error)
	FetchPosts(ctx context.Context, d Descriptor, account accountdomain.Account) ([]map[string]any, error)
}

// HTTPFetcher retrieves source payloads over plain JSON HTTP. Per-platform
// OAuth refresh flows live in the connect flow, not here; the fetcher only
// presents whatever credential the account already carries.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) FetchProfile(ctx context.Context, d Descriptor, account accountdomain.Account) (map[string]any, error) {
	var payload map[string]any
	if err := f.getJSON(ctx, d, account, d.ProfileURL, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (f *HTTPFetcher) FetchPosts(ctx context.Context, d Descriptor, account accountdomain.Account) ([]map[string]any, error) {
	var payload json.RawMessage
	if err := f.getJSON(ctx, d, account, d.PostsURL, &payload); err != nil {
		return nil, err
	}
	return decodePostList(payload)
}

func (f *HTTPFetcher) getJSON(ctx context.Context, d Descriptor, account accountdomain.Account, endpoint string, out any) error {
	endpoint = strings.ReplaceAll(endpoint, "{handle}", url.PathEscape(account.Handle))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if d.Credential == CredentialAccessToken {
		req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned status %d", d.Name, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodePostList accepts either a bare JSON array or the common {"data": [...]}
// envelope.
func decodePostList(raw json.RawMessage) ([]map[string]any, error) {
	var direct []map[string]any
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct, nil
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected posts payload: %w", err)
	}
	return envelope.Data, nil
}
