package rebalance

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennelbot/kennel/internal/contracts"
	"github.com/kennelbot/kennel/internal/execution"
	"github.com/kennelbot/kennel/internal/selection"
	"github.com/kennelbot/kennel/internal/strategyconfig"
	"github.com/kennelbot/kennel/pkg/config"
	"github.com/kennelbot/kennel/pkg/logger"
)

// fakeMarket serves canned yields and prices per symbol.
type fakeMarket struct {
	yields       map[string]float64
	prices       map[string]string
	failingYield map[string]bool
	failingPrice map[string]bool
}

func (m *fakeMarket) GetDividendYield(ctx context.Context, symbol string) (float64, error) {
	if m.failingYield[symbol] {
		return 0, fmt.Errorf("yield lookup failed for %s", symbol)
	}
	return m.yields[symbol], nil
}

func (m *fakeMarket) GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if m.failingPrice[symbol] {
		return decimal.Zero, fmt.Errorf("price lookup failed for %s", symbol)
	}
	s, ok := m.prices[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("no price for %s", symbol)
	}
	return decimal.RequireFromString(s), nil
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

// testStrategy: 3-symbol universe, top 2 Dogs, $200 capital, no pauses.
func testStrategy() *strategyconfig.Config {
	cfg := strategyconfig.Default()
	cfg.Universe = []string{"KO", "VZ", "DIS"}
	cfg.Selection.TopN = 2
	cfg.Allocation.CapitalUSD = 200
	cfg.Execution.SettleDelay = "0s"
	cfg.Execution.OrderInterval = "0s"
	return cfg
}

func newTestOrchestrator(market *fakeMarket, broker execution.Broker, strat *strategyconfig.Config) *Orchestrator {
	log := testLogger()
	ranker := selection.NewRanker(market, log)
	planner := execution.NewPlanner(market, execution.PlanConfig{
		TopN:    strat.Selection.TopN,
		Capital: decimal.NewFromFloat(strat.Allocation.CapitalUSD),
	}, log)
	return NewOrchestrator(ranker, planner, broker, strat, log)
}

func TestRun_FullCycle(t *testing.T) {
	market := &fakeMarket{
		yields: map[string]float64{"KO": 0.05, "VZ": 0.06, "DIS": 0.01},
		prices: map[string]string{"KO": "50", "VZ": "40"},
	}
	broker := execution.NewMockBroker()
	broker.Positions["AAPL"] = 5 // not in the universe, must be liquidated
	broker.Positions["KO"] = 1

	orch := newTestOrchestrator(market, broker, testStrategy())
	report := orch.Run(context.Background(), false)

	// Dogs are the two top yielders
	require.Len(t, report.Dogs, 2)
	assert.Equal(t, "VZ", report.Dogs[0].Symbol)
	assert.Equal(t, "KO", report.Dogs[1].Symbol)

	// AAPL sold in full, then each Dog brought to $100 target
	require.NotEmpty(t, report.Submitted)
	assert.Equal(t, contracts.OrderIntent{Symbol: "AAPL", Side: contracts.OrderSideSell, Qty: 5},
		report.Submitted[0])

	assert.Empty(t, report.Failures)
	assert.EqualValues(t, 2, broker.Positions["VZ"], "$100 at $40 floors to 2 shares")
	assert.EqualValues(t, 2, broker.Positions["KO"], "$100 at $50 is 2 shares, 1 already held")
	_, stillHeld := broker.Positions["AAPL"]
	assert.False(t, stillHeld)
}

func TestRun_OrderFailureDoesNotAbort(t *testing.T) {
	market := &fakeMarket{
		yields: map[string]float64{"KO": 0.05, "VZ": 0.06, "DIS": 0.01},
		prices: map[string]string{"KO": "50", "VZ": "40"},
	}
	broker := execution.NewMockBroker()
	broker.FailSymbols = map[string]bool{"VZ": true}

	orch := newTestOrchestrator(market, broker, testStrategy())
	report := orch.Run(context.Background(), false)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "VZ", report.Failures[0].Intent.Symbol)

	// KO still traded
	assert.Equal(t, []string{"KO"}, broker.SubmittedSymbols())
	assert.False(t, report.FinishedAt.IsZero(), "run completes despite failures")
}

func TestRun_MissingPriceSkipsSymbol(t *testing.T) {
	market := &fakeMarket{
		yields:       map[string]float64{"KO": 0.05, "VZ": 0.06, "DIS": 0.01},
		prices:       map[string]string{"KO": "50"},
		failingPrice: map[string]bool{"VZ": true},
	}
	broker := execution.NewMockBroker()

	orch := newTestOrchestrator(market, broker, testStrategy())
	report := orch.Run(context.Background(), false)

	// VZ skipped, KO still bought
	assert.Equal(t, []string{"KO"}, broker.SubmittedSymbols())

	var vzLine *contracts.TargetLine
	for i := range report.Targets {
		if report.Targets[i].Symbol == "VZ" {
			vzLine = &report.Targets[i]
		}
	}
	require.NotNil(t, vzLine)
	assert.True(t, vzLine.Skipped)
	assert.Empty(t, report.Failures, "a skip is not a failure")
}

func TestRun_PositionReadFailureDegradesToEmpty(t *testing.T) {
	market := &fakeMarket{
		yields: map[string]float64{"KO": 0.05, "VZ": 0.06, "DIS": 0.01},
		prices: map[string]string{"KO": "50", "VZ": "40"},
	}
	broker := execution.NewMockBroker()
	broker.ListErr = fmt.Errorf("positions endpoint down")

	orch := newTestOrchestrator(market, broker, testStrategy())
	report := orch.Run(context.Background(), false)

	// Run completes; with no visible positions both Dogs are bought fresh.
	assert.False(t, report.FinishedAt.IsZero())
	assert.Equal(t, []string{"KO", "VZ"}, broker.SubmittedSymbols())
}

func TestRun_DegradedYieldsStillSelectN(t *testing.T) {
	market := &fakeMarket{
		yields:       map[string]float64{"KO": 0.05},
		prices:       map[string]string{"KO": "50", "VZ": "40", "DIS": "90"},
		failingYield: map[string]bool{"VZ": true, "DIS": true},
	}
	broker := execution.NewMockBroker()

	orch := newTestOrchestrator(market, broker, testStrategy())
	report := orch.Run(context.Background(), false)

	require.Len(t, report.Dogs, 2, "degraded quotes still participate in ranking")
	assert.Equal(t, "KO", report.Dogs[0].Symbol)
	assert.Equal(t, "VZ", report.Dogs[1].Symbol, "tie at zero resolves by universe order")
	assert.Equal(t, 2, report.DegradedQuotes)
}

func TestSubmit_DropsBelowOneShare(t *testing.T) {
	broker := execution.NewMockBroker()
	orch := newTestOrchestrator(&fakeMarket{}, broker, testStrategy())

	report := &contracts.RebalanceReport{}
	orch.submit(context.Background(), contracts.OrderIntent{
		Symbol: "KO",
		Side:   contracts.OrderSideBuy,
		Qty:    0,
	}, report)

	assert.Empty(t, report.Submitted)
	assert.Empty(t, report.Failures)
	require.Len(t, report.Dropped, 1)
	assert.Empty(t, broker.Submitted, "sub-share orders never reach the broker")
}

func TestHistory_RecordsRuns(t *testing.T) {
	market := &fakeMarket{
		yields: map[string]float64{"KO": 0.05, "VZ": 0.06, "DIS": 0.01},
		prices: map[string]string{"KO": "50", "VZ": "40"},
	}
	broker := execution.NewMockBroker()

	orch := newTestOrchestrator(market, broker, testStrategy())
	assert.Empty(t, orch.History())

	orch.Run(context.Background(), true)
	orch.Run(context.Background(), false)

	history := orch.History()
	require.Len(t, history, 2)
	assert.True(t, history[0].Forced)
	assert.False(t, history[1].Forced)
}
