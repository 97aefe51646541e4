package strategyconfig

import (
	"fmt"
	"time"
)

// Validate checks a strategy configuration for internal consistency.
func Validate(cfg *Config) error {
	if len(cfg.Universe) == 0 {
		return fmt.Errorf("universe must not be empty")
	}

	seen := make(map[string]bool, len(cfg.Universe))
	for _, sym := range cfg.Universe {
		if sym == "" {
			return fmt.Errorf("universe contains an empty symbol")
		}
		if seen[sym] {
			return fmt.Errorf("universe contains duplicate symbol %s", sym)
		}
		seen[sym] = true
	}

	if cfg.Selection.TopN < 1 {
		return fmt.Errorf("selection.top_n must be positive, got %d", cfg.Selection.TopN)
	}

	if cfg.Allocation.CapitalUSD <= 0 {
		return fmt.Errorf("allocation.capital_usd must be positive, got %.2f", cfg.Allocation.CapitalUSD)
	}

	if cfg.Rebalance.Month < 1 || cfg.Rebalance.Month > 12 {
		return fmt.Errorf("rebalance.month must be 1-12, got %d", cfg.Rebalance.Month)
	}

	if cfg.Rebalance.DayWindow < 1 {
		return fmt.Errorf("rebalance.day_window must be positive, got %d", cfg.Rebalance.DayWindow)
	}

	if cfg.Rebalance.PollSchedule == "" {
		return fmt.Errorf("rebalance.poll_schedule must not be empty")
	}

	if _, err := time.ParseDuration(cfg.Execution.SettleDelay); err != nil {
		return fmt.Errorf("execution.settle_delay: %w", err)
	}

	if _, err := time.ParseDuration(cfg.Execution.OrderInterval); err != nil {
		return fmt.Errorf("execution.order_interval: %w", err)
	}

	return nil
}
