package alpaca

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kennelbot/kennel/internal/execution"
)

// accountResponse mirrors GET /v2/account. Alpaca serializes money
// fields as strings.
type accountResponse struct {
	Status      string `json:"status"`
	Currency    string `json:"currency"`
	BuyingPower string `json:"buying_power"`
	Cash        string `json:"cash"`
}

// GetAccount returns the account summary. This doubles as the startup
// connectivity check: an error here is the one fatal error class.
func (c *Client) GetAccount(ctx context.Context) (*execution.Account, error) {
	resp, err := c.request(ctx, http.MethodGet, "/v2/account", nil)
	if err != nil {
		return nil, fmt.Errorf("account request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var result accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode account response: %w", err)
	}

	acct := &execution.Account{
		Status:      result.Status,
		BuyingPower: parseDecimalSafe(result.BuyingPower),
		Cash:        parseDecimalSafe(result.Cash),
	}

	c.logger.WithFields(map[string]interface{}{
		"status":       acct.Status,
		"buying_power": acct.BuyingPower.StringFixed(2),
	}).Debug("Account fetched")

	return acct, nil
}

// parseDecimalSafe parses Alpaca's string money fields, zero on failure
func parseDecimalSafe(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
