package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxUserInfoBody = 1 << 20

// UserInfoFetcher presents an access token to a provider's user-info
// endpoint and returns the raw attribute payload. Injected so login flows
// can run against a deterministic fake in tests.
type UserInfoFetcher interface {
	Fetch(ctx context.Context, cfg ClientConfig, accessToken string) (map[string]any, error)
}

// HTTPUserInfoFetcher is the production fetcher. The timeout bounds the only
// network-bound step in a login; a slow provider fails the login instead of
// hanging the caller.
type HTTPUserInfoFetcher struct {
	client *http.Client
}

func NewHTTPUserInfoFetcher(timeout time.Duration) *HTTPUserInfoFetcher {
	return &HTTPUserInfoFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPUserInfoFetcher) Fetch(ctx context.Context, cfg ClientConfig, accessToken string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user-info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user-info request to %s failed: %w", cfg.Provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("user-info request to %s returned status %d", cfg.Provider, resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserInfoBody)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s user-info payload: %w", cfg.Provider, err)
	}

	return raw, nil
}
