package rebalance

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/kennelbot/kennel/internal/contracts"
	"github.com/kennelbot/kennel/internal/execution"
	"github.com/kennelbot/kennel/internal/selection"
	"github.com/kennelbot/kennel/internal/strategyconfig"
	"github.com/kennelbot/kennel/pkg/logger"
)

// Orchestrator executes one full rebalance cycle: select the Dogs,
// liquidate everything else, wait for sells to settle, then adjust each
// Dog to its equal-weight target. Every external call is independently
// guarded, so one symbol's failure never aborts the run; Run always
// returns a report, never an error.
type Orchestrator struct {
	ranker  *selection.Ranker
	planner *execution.Planner
	broker  execution.Broker

	universe    []string
	topN        int
	settleDelay time.Duration
	limiter     *rate.Limiter

	logger *logger.Logger

	mu      sync.Mutex
	history []contracts.RebalanceReport
}

// maxHistory bounds the in-memory run history served by the status API.
const maxHistory = 100

// NewOrchestrator creates an orchestrator from the strategy config
func NewOrchestrator(
	ranker *selection.Ranker,
	planner *execution.Planner,
	broker execution.Broker,
	strat *strategyconfig.Config,
	log *logger.Logger,
) *Orchestrator {
	interval := strat.Execution.OrderIntervalDuration()
	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return &Orchestrator{
		ranker:      ranker,
		planner:     planner,
		broker:      broker,
		universe:    strat.Universe,
		topN:        strat.Selection.TopN,
		settleDelay: strat.Execution.SettleDelayDuration(),
		limiter:     limiter,
		logger:      log,
	}
}

// Run executes one rebalance. The forced flag only annotates the
// report; the sequence is identical for scheduled and startup runs.
func (o *Orchestrator) Run(ctx context.Context, forced bool) *contracts.RebalanceReport {
	started := time.Now()
	report := &contracts.RebalanceReport{
		Year:      started.Year(),
		StartedAt: started,
		Forced:    forced,
	}

	o.logger.WithFields(map[string]interface{}{
		"year":   report.Year,
		"forced": forced,
	}).Info("Starting Dogs of the Dow rebalance")

	// Selecting
	dogs, degraded := o.ranker.Dogs(ctx, o.universe, o.topN)
	report.Dogs = dogs
	report.DegradedQuotes = degraded
	dogSymbols := contracts.DogSymbols(dogs, len(dogs))

	// Divesting: sell everything that is no longer a Dog.
	positions := o.readPositions(ctx)
	divestments := o.planner.PlanDivestments(positions, dogSymbols)
	for _, intent := range divestments {
		o.submit(ctx, intent, report)
	}
	if len(divestments) == 0 {
		o.logger.Info("No non-Dog positions to sell")
	}

	// Settling: give sell orders time to clear before re-reading.
	// Heuristic wait, not a guarantee; the acquisition pass re-diffs
	// against the fresh read, so stale data degrades to extra no-ops.
	if len(divestments) > 0 && o.settleDelay > 0 {
		o.logger.WithField("delay", o.settleDelay.String()).
			Info("Waiting for sell orders to settle")
		select {
		case <-time.After(o.settleDelay):
		case <-ctx.Done():
		}
	}

	// Acquiring: adjust each Dog to its equal-weight target.
	positions = o.readPositions(ctx)
	targets, lines := o.planner.PlanTargets(ctx, dogSymbols, positions)
	report.Targets = lines
	for _, intent := range targets {
		o.submit(ctx, intent, report)
	}

	report.FinishedAt = time.Now()

	o.logger.WithFields(map[string]interface{}{
		"year":      report.Year,
		"submitted": len(report.Submitted),
		"failures":  len(report.Failures),
		"dropped":   len(report.Dropped),
		"duration":  report.Duration().String(),
	}).Info("Rebalance complete")

	o.record(*report)
	return report
}

// readPositions reads current holdings, degrading to an empty position
// set when the broker read fails.
func (o *Orchestrator) readPositions(ctx context.Context) map[string]int64 {
	positions, err := o.broker.ListPositions(ctx)
	if err != nil {
		o.logger.WithError(err).Warn("Could not fetch positions, assuming none")
		return map[string]int64{}
	}
	return positions
}

// submit pushes one intent to the broker. This is the single place the
// minimum-tradable-unit rule applies: quantities below one whole share
// are dropped with a log note. Failures are recorded and skipped.
func (o *Orchestrator) submit(ctx context.Context, intent contracts.OrderIntent, report *contracts.RebalanceReport) {
	if !intent.Tradable() {
		o.logger.WithFields(map[string]interface{}{
			"symbol": intent.Symbol,
			"qty":    intent.Qty,
		}).Warn("Skipping order below one share")
		report.Dropped = append(report.Dropped, intent)
		return
	}

	// Pace submissions to respect broker rate limits.
	if err := o.limiter.Wait(ctx); err != nil {
		report.Failures = append(report.Failures, contracts.IntentFailure{
			Intent: intent,
			Reason: err.Error(),
		})
		return
	}

	if err := o.broker.SubmitOrder(ctx, intent); err != nil {
		o.logger.WithError(err).WithFields(map[string]interface{}{
			"symbol": intent.Symbol,
			"side":   intent.Side,
			"qty":    intent.Qty,
		}).Error("Order failed")
		report.Failures = append(report.Failures, contracts.IntentFailure{
			Intent: intent,
			Reason: err.Error(),
		})
		return
	}

	report.Submitted = append(report.Submitted, intent)

	action := "Sold"
	if intent.Side == contracts.OrderSideBuy {
		action = "Bought"
	}
	o.logger.Infof("%s %d share(s) of %s", action, intent.Qty, intent.Symbol)
}

// record appends a finished report to the bounded in-memory history.
func (o *Orchestrator) record(report contracts.RebalanceReport) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.history = append(o.history, report)
	if len(o.history) > maxHistory {
		o.history = o.history[len(o.history)-maxHistory:]
	}
}

// History returns a copy of past run reports, oldest first.
func (o *Orchestrator) History() []contracts.RebalanceReport {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]contracts.RebalanceReport, len(o.history))
	copy(out, o.history)
	return out
}
