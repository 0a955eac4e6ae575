package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "puckline",
	Short: "Puckline - NHL skater opportunity scoring engine",
	Long: `Puckline CLI

Generates daily opportunity scores for NHL skaters: lineup deployment,
recent form, goaltender matchup and schedule situation, blended into a
ranked slate per analysis date.

Usage:
  go run ./cmd/puckline [command]

Examples:
  go run ./cmd/puckline generate --date 2025-01-15
  go run ./cmd/puckline generate --from 2025-01-01 --to 2025-01-31 --historical
  go run ./cmd/puckline serve
  go run ./cmd/puckline scheduler start
  go run ./cmd/puckline lines TOR
  go run ./cmd/puckline test-db`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
