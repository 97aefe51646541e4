package yahoo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kennelbot/kennel/pkg/config"
	"github.com/kennelbot/kennel/pkg/httputil"
	"github.com/kennelbot/kennel/pkg/logger"
)

// Client fetches quotes from Yahoo Finance: last prices from the chart
// JSON API, dividend yields by scraping the quote page. Failures are
// per-symbol; callers degrade instead of aborting.
type Client struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	quoteBaseURL string
	chartBaseURL string
}

// NewClient creates a new Yahoo Finance client
func NewClient(cfg config.YahooConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient:   httpClient,
		logger:       log,
		quoteBaseURL: cfg.QuoteBaseURL,
		chartBaseURL: cfg.ChartBaseURL,
	}
}

// fetch performs a browser-like GET. Yahoo rejects default Go
// user agents.
func (c *Client) fetch(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "text/html,application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp, nil
}
