package alpaca

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kennelbot/kennel/pkg/config"
	"github.com/kennelbot/kennel/pkg/httputil"
	"github.com/kennelbot/kennel/pkg/logger"
)

// Client handles communication with the Alpaca trading API.
// All Alpaca calls go through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.AlpacaConfig
}

// NewClient creates a new Alpaca API client
func NewClient(cfg config.AlpacaConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// request makes an authenticated request to the Alpaca API
func (c *Client) request(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	url := c.cfg.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("APCA-API-KEY-ID", c.cfg.APIKey)
	req.Header.Set("APCA-API-SECRET-KEY", c.cfg.SecretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

// apiError drains the response body into a readable error
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("alpaca API error status %d: %s", resp.StatusCode, string(body))
}
