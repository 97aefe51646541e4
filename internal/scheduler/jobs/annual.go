package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/kennelbot/kennel/internal/contracts"
	"github.com/kennelbot/kennel/internal/strategyconfig"
	"github.com/kennelbot/kennel/pkg/logger"
)

// Rebalancer runs one full rebalance cycle and reports the outcome.
type Rebalancer interface {
	Run(ctx context.Context, forced bool) *contracts.RebalanceReport
}

// AnnualRebalanceJob polls daily and triggers the rebalance once per
// calendar year, during the first DayWindow days of the configured
// month. The only state it owns is the last rebalanced year; it is
// process-lifetime only and resets on restart.
type AnnualRebalanceJob struct {
	rebalancer Rebalancer
	month      time.Month
	dayWindow  int
	schedule   string
	logger     *logger.Logger

	// now is swapped out in tests
	now func() time.Time

	mu                 sync.Mutex
	lastRebalancedYear int // 0 = never
}

// NewAnnualRebalanceJob creates the annual rebalance job from strategy config
func NewAnnualRebalanceJob(rebalancer Rebalancer, strat *strategyconfig.Config, log *logger.Logger) *AnnualRebalanceJob {
	return &AnnualRebalanceJob{
		rebalancer: rebalancer,
		month:      time.Month(strat.Rebalance.Month),
		dayWindow:  strat.Rebalance.DayWindow,
		schedule:   strat.Rebalance.PollSchedule,
		logger:     log,
		now:        time.Now,
	}
}

// Name returns the job name
func (j *AnnualRebalanceJob) Name() string {
	return "annual_rebalance"
}

// Schedule returns the poll cron expression
func (j *AnnualRebalanceJob) Schedule() string {
	return j.schedule
}

// Run performs one eligibility poll. A rebalance that merely has
// per-order failures still counts as this year's run; the guard is set
// by the trigger decision, not by order outcomes.
func (j *AnnualRebalanceJob) Run(ctx context.Context) error {
	now := j.now()

	j.mu.Lock()
	eligible := j.inWindow(now) && j.lastRebalancedYear != now.Year()
	if eligible {
		j.lastRebalancedYear = now.Year()
	}
	j.mu.Unlock()

	if !eligible {
		j.logger.WithFields(map[string]interface{}{
			"next_window": j.nextWindow(now).Format("2006-01-02"),
		}).Info("Holding, not rebalance season")
		return nil
	}

	j.logger.Info("Rebalance season, starting annual rebalance")
	j.rebalancer.Run(ctx, false)
	return nil
}

// ForceNow runs an immediate rebalance regardless of eligibility and
// marks the current year as done, so the natural in-window trigger for
// the same year is suppressed.
func (j *AnnualRebalanceJob) ForceNow(ctx context.Context) {
	now := j.now()

	j.mu.Lock()
	j.lastRebalancedYear = now.Year()
	j.mu.Unlock()

	j.logger.Info("Forced rebalance on startup")
	j.rebalancer.Run(ctx, true)
}

// LastRebalancedYear returns the guard value, 0 when no rebalance has
// run this process lifetime.
func (j *AnnualRebalanceJob) LastRebalancedYear() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.lastRebalancedYear
}

// inWindow checks the eligibility window: configured month, day within
// [1, dayWindow].
func (j *AnnualRebalanceJob) inWindow(t time.Time) bool {
	return t.Month() == j.month && t.Day() >= 1 && t.Day() <= j.dayWindow
}

// nextWindow returns the start of the next window that could still
// trigger. Called with the guard already checked, so an in-window "not
// eligible" means this year's run already happened.
func (j *AnnualRebalanceJob) nextWindow(now time.Time) time.Time {
	j.mu.Lock()
	done := j.lastRebalancedYear == now.Year()
	j.mu.Unlock()

	year := now.Year()
	beforeWindow := now.Month() < j.month ||
		(now.Month() == j.month && now.Day() <= j.dayWindow)
	if done || !beforeWindow {
		year++
	}
	return time.Date(year, j.month, 1, 0, 0, 0, 0, now.Location())
}
