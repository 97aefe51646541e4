package alpaca

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kennelbot/kennel/internal/contracts"
)

// orderRequest mirrors POST /v2/orders. The bot only submits market,
// good-till-canceled orders in whole shares.
type orderRequest struct {
	Symbol      string `json:"symbol"`
	Qty         string `json:"qty"`
	Side        string `json:"side"`
	Type        string `json:"type"`
	TimeInForce string `json:"time_in_force"`
}

// orderResponse is the subset of the order reply we care about
type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// SubmitOrder submits a market GTC order for the intent.
func (c *Client) SubmitOrder(ctx context.Context, intent contracts.OrderIntent) error {
	payload := orderRequest{
		Symbol:      intent.Symbol,
		Qty:         fmt.Sprintf("%d", intent.Qty),
		Side:        string(intent.Side),
		Type:        "market",
		TimeInForce: "gtc",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	resp, err := c.request(ctx, http.MethodPost, "/v2/orders", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("order request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return apiError(resp)
	}

	var result orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode order response: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":   intent.Symbol,
		"side":     intent.Side,
		"qty":      intent.Qty,
		"order_id": result.ID,
		"status":   result.Status,
	}).Debug("Order submitted")

	return nil
}
