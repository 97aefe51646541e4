package alpaca

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// positionResponse mirrors one entry of GET /v2/positions
type positionResponse struct {
	Symbol string `json:"symbol"`
	Qty    string `json:"qty"`
}

// ListPositions returns current holdings as symbol -> quantity.
// Fractional holdings truncate to whole shares; the bot only ever
// trades whole shares.
func (c *Client) ListPositions(ctx context.Context) (map[string]int64, error) {
	resp, err := c.request(ctx, http.MethodGet, "/v2/positions", nil)
	if err != nil {
		return nil, fmt.Errorf("positions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result []positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode positions response: %w", err)
	}

	positions := make(map[string]int64, len(result))
	for _, pos := range result {
		qty := parseQty(pos.Qty)
		if qty == 0 {
			continue
		}
		positions[pos.Symbol] = qty
	}

	c.logger.WithField("count", len(positions)).Debug("Positions fetched")

	return positions, nil
}

// parseQty parses Alpaca's string quantity, truncating fractions
func parseQty(s string) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f)
}
