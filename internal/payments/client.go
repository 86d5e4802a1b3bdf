// Package payments fetches completed payment sessions from the payments
// platform and maps them into statically-typed records.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds each fetch call.
const DefaultTimeout = 30 * time.Second

// Client reads payment sessions from the platform API.
type Client struct {
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a payments client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves payment sessions from endpoint and returns the finished
// ones as flattened records.
func (c *Client) Fetch(ctx context.Context, endpoint string) ([]FinishedPayment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("payments request failed: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payments request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payments endpoint returned %d: %s", resp.StatusCode, body)
	}

	var sessions []paymentSession
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		return nil, fmt.Errorf("payments response decode failed: %w", err)
	}

	records := make([]FinishedPayment, 0, len(sessions))
	for _, s := range sessions {
		if !s.Finished {
			continue
		}
		records = append(records, mapSession(s))
	}
	return records, nil
}
