package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	strategyFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kennel",
	Short: "Dogs of the Dow annual rebalance bot",
	Long: `Kennel runs the Dogs of the Dow strategy against a brokerage paper
account: once a year it ranks the Dow 30 by trailing dividend yield,
sells everything that is not a top-yield Dog, and equal-weights the
Dogs with whole-share market orders.

Example:
  kennel start
  kennel rebalance
  kennel dogs
  kennel positions
  kennel status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy file (default from STRATEGY_FILE or strategy.yaml)")
}
