package strategyconfig

import "time"

// Config is the full Dogs of the Dow strategy configuration.
// The universe is injected here rather than baked into selection logic
// so index changes never touch core code.
type Config struct {
	Meta       Meta       `yaml:"meta" json:"meta"`
	Universe   []string   `yaml:"universe" json:"universe"`
	Selection  Selection  `yaml:"selection" json:"selection"`
	Allocation Allocation `yaml:"allocation" json:"allocation"`
	Rebalance  Rebalance  `yaml:"rebalance" json:"rebalance"`
	Execution  Execution  `yaml:"execution" json:"execution"`
}

// Meta holds strategy identification
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Selection configures the yield ranking
type Selection struct {
	TopN int `yaml:"top_n" json:"top_n"`
}

// Allocation configures equal-weight dollar targets
type Allocation struct {
	// CapitalUSD is the total amount deployed across the Dogs.
	CapitalUSD float64 `yaml:"capital_usd" json:"capital_usd"`
}

// Rebalance configures the annual trigger window
type Rebalance struct {
	Month     int `yaml:"month" json:"month"`           // 1-12
	DayWindow int `yaml:"day_window" json:"day_window"` // day-of-month 1..DayWindow

	// PollSchedule is a cron expression (with seconds) for the
	// eligibility check. Default: once per day at 09:00.
	PollSchedule string `yaml:"poll_schedule" json:"poll_schedule"`

	ForceOnStartup bool `yaml:"force_on_startup" json:"force_on_startup"`
}

// Execution configures run pacing
type Execution struct {
	// SettleDelay is the pause between the divestment and acquisition
	// phases, letting sell orders settle before positions are re-read.
	SettleDelay string `yaml:"settle_delay" json:"settle_delay"`

	// OrderInterval is the minimum spacing between order submissions.
	OrderInterval string `yaml:"order_interval" json:"order_interval"`
}

// SettleDelayDuration returns the parsed settle delay.
// Validate guarantees the string parses.
func (e Execution) SettleDelayDuration() time.Duration {
	d, _ := time.ParseDuration(e.SettleDelay)
	return d
}

// OrderIntervalDuration returns the parsed inter-order spacing.
func (e Execution) OrderIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(e.OrderInterval)
	return d
}

// DowComponents is the default universe: the 30 Dow Jones Industrial
// Average members. Update the strategy file if the index changes.
var DowComponents = []string{
	"AAPL", "AMGN", "AXP", "BA", "CAT",
	"CRM", "CSCO", "CVX", "DIS", "DOW",
	"GS", "HD", "HON", "IBM", "INTC",
	"JNJ", "JPM", "KO", "MCD", "MMM",
	"MRK", "MSFT", "NKE", "PG", "TRV",
	"UNH", "V", "VZ", "WBA", "WMT",
}

// Default returns the stock Dogs of the Dow configuration: Dow 30
// universe, top 10 by yield, $10,000 equal-weight, first 5 days of
// January, daily poll.
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "dogs-of-the-dow",
			Version:    "1",
		},
		Universe: append([]string(nil), DowComponents...),
		Selection: Selection{
			TopN: 10,
		},
		Allocation: Allocation{
			CapitalUSD: 10_000,
		},
		Rebalance: Rebalance{
			Month:        1,
			DayWindow:    5,
			PollSchedule: "0 0 9 * * *",
		},
		Execution: Execution{
			SettleDelay:   "5s",
			OrderInterval: "1s",
		},
	}
}
