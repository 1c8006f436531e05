// Package remote implements the typed HTTP client for the forum backend's
// REST contract.
//
// Every call is context-aware, has no built-in retry, and surfaces any
// transport, status or decode failure as a single wrapped error with no
// further taxonomy; the caller's status container renders it generically.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config holds configuration for the remote backend client.
type Config struct {
	BaseURL string        // base URL including the /api prefix
	Timeout time.Duration // end-to-end request timeout
}

// Client is the typed gateway to the remote backend.
type Client struct {
	cfg    Config
	client *http.Client
	log    zerolog.Logger
}

// NewClient creates a gateway with the given configuration and HTTP client.
func NewClient(cfg Config, client *http.Client, log zerolog.Logger) *Client {
	return &Client{cfg: cfg, client: client, log: log}
}

// do runs one request. body and out may be nil. Each request carries a fresh
// X-Request-ID so backend logs can be correlated with client logs.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("remote: build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.log.Warn().Err(err).Str("request_id", requestID).Msg("failed to close response body")
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("remote: %s %s: http %d", method, path, res.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("remote: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}
