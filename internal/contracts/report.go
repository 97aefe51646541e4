package contracts

import "time"

// RebalanceReport summarizes one rebalance run. A run always produces a
// report, even when every individual order failed; partial failure is a
// normal, reportable outcome.
type RebalanceReport struct {
	Year       int       `json:"year"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Forced     bool      `json:"forced,omitempty"`

	Dogs    []RankedSymbol `json:"dogs"`
	Targets []TargetLine   `json:"targets"`

	Submitted []OrderIntent   `json:"submitted"`
	Failures  []IntentFailure `json:"failures"`
	Dropped   []OrderIntent   `json:"dropped,omitempty"` // below one share

	// DegradedQuotes counts yield lookups that defaulted to zero.
	DegradedQuotes int `json:"degraded_quotes"`
}

// IntentFailure records one order submission that the broker rejected.
type IntentFailure struct {
	Intent OrderIntent `json:"intent"`
	Reason string      `json:"reason"`
}

// TargetLine is the per-symbol diagnostic from the acquisition pass.
type TargetLine struct {
	Symbol       string `json:"symbol"`
	Price        string `json:"price"` // decimal string; empty when skipped
	TargetShares int64  `json:"target_shares"`
	CurrentQty   int64  `json:"current_qty"`
	Diff         int64  `json:"diff"`
	Skipped      bool   `json:"skipped,omitempty"`  // price unavailable
	AtTarget     bool   `json:"at_target,omitempty"`
}

// Duration returns the wall-clock length of the run.
func (r *RebalanceReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
