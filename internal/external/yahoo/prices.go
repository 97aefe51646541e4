package yahoo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// chartResponse is the subset of the v8 chart API reply we use.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				Currency           string  `json:"currency"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetLatestPrice returns the most recent market price for a symbol.
func (c *Client) GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=2d&interval=1d", c.chartBaseURL, symbol)

	resp, err := c.fetch(ctx, url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("chart request for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return decimal.Zero, fmt.Errorf("decode chart response for %s: %w", symbol, err)
	}

	if result.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("chart API error for %s: %s", symbol, result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("no chart data for %s", symbol)
	}

	meta := result.Chart.Result[0].Meta
	price := meta.RegularMarketPrice
	if price <= 0 {
		price = meta.PreviousClose
	}
	if price <= 0 {
		return decimal.Zero, fmt.Errorf("no usable price for %s", symbol)
	}

	d := decimal.NewFromFloat(price)

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"price":  d.StringFixed(2),
	}).Debug("Price fetched")

	return d, nil
}
