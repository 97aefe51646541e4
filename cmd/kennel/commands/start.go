package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kennelbot/kennel/internal/api"
	"github.com/kennelbot/kennel/internal/scheduler"
	"github.com/kennelbot/kennel/internal/scheduler/jobs"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the daemon: scheduler plus status API",
	Long: `Starts the long-running bot.

This command:
- Verifies broker connectivity (fatal if the account is unreachable)
- Schedules the annual rebalance check
- Serves the read-only status API

Endpoints:
  GET /health          - Health check
  GET /api/strategy    - Active strategy parameters
  GET /api/dogs        - Live Dog ranking (no orders)
  GET /api/positions   - Broker positions
  GET /api/runs        - Rebalance run history
  GET /api/scheduler   - Job statistics

Example:
  kennel start
  kennel start --strategy strategy.yaml`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Kennel - Dogs of the Dow Bot ===")

	a, err := bootstrap()
	if err != nil {
		return err
	}
	log := a.logger

	// Broker connectivity is the only fatal startup check. Everything
	// after this point degrades instead of exiting.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	account, err := a.broker.GetAccount(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("broker connectivity check: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"account_status": account.Status,
		"buying_power":   account.BuyingPower.String(),
		"cash":           account.Cash.String(),
	}).Info("Broker account verified")

	// Scheduler with the annual rebalance job
	sched := scheduler.New(log)
	annual := jobs.NewAnnualRebalanceJob(a.orchestrator, a.strategy, log)
	if err := sched.AddJob(annual); err != nil {
		return fmt.Errorf("register rebalance job: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if a.strategy.Rebalance.ForceOnStartup {
		log.Warn("Force-on-startup enabled, rebalancing now")
		annual.ForceNow(context.Background())
	}

	// Status API
	handler := api.NewHandler(a.broker, a.ranker, a.orchestrator, sched, a.strategy, log)
	router := api.NewRouter(handler, log)
	server := api.New(a.cfg, log, router)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	fmt.Printf("\nStatus API on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.WithField("signal", sig.String()).Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("status server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}

	log.Info("Kennel stopped")
	return nil
}
