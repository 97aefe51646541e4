package contracts

import (
	"context"

	"github.com/shopspring/decimal"
)

// MarketData supplies dividend yield and last price per symbol.
// Both lookups may fail per-symbol; callers are expected to degrade
// (yield defaults to zero, a missing price skips the symbol) rather
// than abort a run.
type MarketData interface {
	// GetDividendYield returns the trailing dividend yield as a
	// fraction (0.025 for 2.5%).
	GetDividendYield(ctx context.Context, symbol string) (float64, error)

	// GetLatestPrice returns the most recent closing price.
	GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}
