package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// dogsCmd represents the dogs command
var dogsCmd = &cobra.Command{
	Use:   "dogs",
	Short: "Show the current yield ranking without trading",
	Long: `Fetches a dividend yield for every universe symbol and prints the
full ranking, marking the current Dogs. No orders are submitted.

Example:
  kennel dogs`,
	RunE: runDogs,
}

func init() {
	rootCmd.AddCommand(dogsCmd)
}

func runDogs(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}

	ranked := a.ranker.Rank(context.Background(), a.strategy.Universe)
	topN := a.strategy.Selection.TopN

	fmt.Printf("Universe of %d ranked by trailing dividend yield (top %d are Dogs):\n\n",
		len(ranked), topN)
	fmt.Printf("%-5s %-7s %8s\n", "RANK", "SYMBOL", "YIELD")

	for _, r := range ranked {
		marker := ""
		if r.IsDog(topN) {
			marker = "  <- Dog"
		}
		if r.Degraded {
			marker += "  (quote unavailable)"
		}
		fmt.Printf("%-5d %-7s %7.2f%%%s\n", r.Rank, r.Symbol, r.Yield*100, marker)
	}

	return nil
}
