package commands

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kennelbot/kennel/internal/execution"
	"github.com/kennelbot/kennel/internal/external/alpaca"
	"github.com/kennelbot/kennel/internal/external/yahoo"
	"github.com/kennelbot/kennel/internal/rebalance"
	"github.com/kennelbot/kennel/internal/selection"
	"github.com/kennelbot/kennel/internal/strategyconfig"
	"github.com/kennelbot/kennel/pkg/config"
	"github.com/kennelbot/kennel/pkg/httputil"
	"github.com/kennelbot/kennel/pkg/logger"
)

// app holds everything a command needs after bootstrap.
type app struct {
	cfg      *config.Config
	strategy *strategyconfig.Config
	logger   *logger.Logger

	market       *yahoo.Client
	broker       *alpaca.Client
	ranker       *selection.Ranker
	planner      *execution.Planner
	orchestrator *rebalance.Orchestrator
}

// bootstrap wires the full dependency graph shared by every command:
// env config, strategy file, Yahoo market data, Alpaca broker, ranker,
// planner and orchestrator. Commands that only read data still get the
// same graph so their numbers match what a live run would do.
func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	path := cfg.StrategyFile
	if strategyFile != "" {
		path = strategyFile
	}

	strat, err := strategyconfig.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"strategy_id":      strat.Meta.StrategyID,
		"universe":         len(strat.Universe),
		"top_n":            strat.Selection.TopN,
		"capital_usd":      strat.Allocation.CapitalUSD,
		"window":           fmt.Sprintf("month %d days 1-%d", strat.Rebalance.Month, strat.Rebalance.DayWindow),
		"force_on_startup": strat.Rebalance.ForceOnStartup,
	}).Info("Strategy loaded")

	yahooHTTP := httputil.NewWithTimeout(log, cfg.Yahoo.Timeout)
	alpacaHTTP := httputil.NewWithTimeout(log, cfg.Alpaca.Timeout)

	market := yahoo.NewClient(cfg.Yahoo, yahooHTTP, log)
	broker := alpaca.NewClient(cfg.Alpaca, alpacaHTTP, log)

	ranker := selection.NewRanker(market, log)
	planner := execution.NewPlanner(market, execution.PlanConfig{
		TopN:    strat.Selection.TopN,
		Capital: decimal.NewFromFloat(strat.Allocation.CapitalUSD),
	}, log)
	orchestrator := rebalance.NewOrchestrator(ranker, planner, broker, strat, log)

	return &app{
		cfg:          cfg,
		strategy:     strat,
		logger:       log,
		market:       market,
		broker:       broker,
		ranker:       ranker,
		planner:      planner,
		orchestrator: orchestrator,
	}, nil
}
