package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show broker account status",
	Long: `Prints a summary of the configured broker account and the active
strategy parameters.

Example:
  kennel status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	account, err := a.broker.GetAccount(context.Background())
	if err != nil {
		return fmt.Errorf("get account: %w", err)
	}

	fmt.Println("Account")
	fmt.Printf("  Status:       %s\n", account.Status)
	fmt.Printf("  Cash:         $%s\n", account.Cash.StringFixed(2))
	fmt.Printf("  Buying power: $%s\n", account.BuyingPower.StringFixed(2))

	fmt.Println("\nStrategy")
	fmt.Printf("  ID:           %s (v%s)\n", a.strategy.Meta.StrategyID, a.strategy.Meta.Version)
	fmt.Printf("  Universe:     %d symbols\n", len(a.strategy.Universe))
	fmt.Printf("  Dogs:         top %d by yield\n", a.strategy.Selection.TopN)
	fmt.Printf("  Capital:      $%.2f\n", a.strategy.Allocation.CapitalUSD)
	fmt.Printf("  Window:       month %d, days 1-%d\n",
		a.strategy.Rebalance.Month, a.strategy.Rebalance.DayWindow)

	return nil
}
