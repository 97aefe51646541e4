package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rebalanceCmd represents the rebalance command
var rebalanceCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Run one full rebalance immediately and exit",
	Long: `Runs a single rebalance cycle regardless of the calendar window:
rank the universe by yield, sell non-Dogs, settle, then buy each Dog
up to its equal-weight target.

This submits real orders to the configured broker account.

Example:
  kennel rebalance`,
	RunE: runRebalance,
}

func init() {
	rootCmd.AddCommand(rebalanceCmd)
}

func runRebalance(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Kennel Manual Rebalance ===")

	a, err := bootstrap()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	report := a.orchestrator.Run(ctx, true)

	fmt.Printf("\nRebalance %d finished in %s\n", report.Year, report.Duration().Round(0))
	fmt.Printf("  Dogs:      %d (degraded quotes: %d)\n", len(report.Dogs), report.DegradedQuotes)
	fmt.Printf("  Submitted: %d\n", len(report.Submitted))
	fmt.Printf("  Dropped:   %d (below one share)\n", len(report.Dropped))
	fmt.Printf("  Failures:  %d\n", len(report.Failures))

	for _, f := range report.Failures {
		fmt.Printf("    %s %s x%d: %s\n", f.Intent.Side, f.Intent.Symbol, f.Intent.Qty, f.Reason)
	}

	return nil
}
