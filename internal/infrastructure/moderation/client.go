package moderation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/entity"
	moderationRepo "github.com/UnitedWeRise-org/UnitedWeRise-sub002/internal/domain/repository/moderation"
)

// Client calls the external visual-content classifier over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		http: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		},
	}
}

type classifyRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

func (c *Client) Classify(ctx context.Context, image []byte, mimeType string) (*entity.ModerationVerdict, error) {
	body, err := json.Marshal(classifyRequest{
		Image:    base64.StdEncoding.EncodeToString(image),
		MimeType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building classify request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", moderationRepo.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", moderationRepo.ErrUnavailable, resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier responded with status %d", resp.StatusCode)
	}

	var verdict entity.ModerationVerdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, fmt.Errorf("decoding classify response: %w", err)
	}

	return &verdict, nil
}
