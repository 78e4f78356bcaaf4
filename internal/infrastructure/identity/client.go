package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client asks the identity service whether a user may act for a candidate.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		},
	}
}

func (c *Client) OwnsCandidate(ctx context.Context, userID, candidateID string) (bool, error) {
	u := fmt.Sprintf("%s/candidates/%s/ownership?user_id=%s",
		c.endpoint, url.PathEscape(candidateID), url.QueryEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("building ownership request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("calling identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("identity service responded with status %d", resp.StatusCode)
	}

	var body struct {
		Owns bool `json:"owns"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decoding ownership response: %w", err)
	}

	return body.Owns, nil
}
