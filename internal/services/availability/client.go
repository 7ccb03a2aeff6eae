// Package availability provides the read client for the availability-lookup
// service.
//
// Availability data is advisory enrichment: callers are expected to treat any
// failure here as a degraded (empty) result rather than a fatal one.
package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// Summary reports where one media item can currently be watched.
type Summary struct {
	MediaItemID  string         `json:"media_item_id"`
	Providers    []string       `json:"providers"`
	StatusCounts map[string]int `json:"status_counts"`
}

// Gateway is the batch lookup contract consumed by the resolution engine.
type Gateway interface {
	BatchGetSummaries(ctx context.Context, mediaItemIDs []string) ([]Summary, error)
}

// Client calls the availability service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates an availability client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("availability base url is required")
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

type batchRequest struct {
	MediaItemIDs []string `json:"media_item_ids"`
}

type batchResponse struct {
	Summaries []Summary `json:"summaries"`
}

// BatchGetSummaries fetches availability summaries for a set of media items
// in a single upstream call.
func (c *Client) BatchGetSummaries(ctx context.Context, mediaItemIDs []string) ([]Summary, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("availability client is not configured")
	}
	if len(mediaItemIDs) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(batchRequest{MediaItemIDs: mediaItemIDs})
	if err != nil {
		return nil, fmt.Errorf("encode batch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/availability/batch", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build batch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("availability batch lookup: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("availability batch lookup: unexpected status %d", resp.StatusCode)
	}

	var decoded batchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode batch response: %w", err)
	}
	return decoded.Summaries, nil
}

var _ Gateway = (*Client)(nil)
