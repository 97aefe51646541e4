package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// positionsCmd represents the positions command
var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Show broker positions",
	Long: `Lists the open positions in the configured broker account.

Example:
  kennel positions`,
	RunE: runPositions,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
}

func runPositions(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	positions, err := a.broker.ListPositions(context.Background())
	if err != nil {
		return fmt.Errorf("list positions: %w", err)
	}

	if len(positions) == 0 {
		fmt.Println("No open positions")
		return nil
	}

	symbols := make([]string, 0, len(positions))
	for s := range positions {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	fmt.Printf("%-7s %8s\n", "SYMBOL", "QTY")
	for _, s := range symbols {
		fmt.Printf("%-7s %8d\n", s, positions[s])
	}
	fmt.Printf("\n%d positions\n", len(positions))

	return nil
}
