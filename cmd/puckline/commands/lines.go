package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmelo/puckline/internal/provider/dailyfaceoff"
	"github.com/hmelo/puckline/pkg/config"
	"github.com/hmelo/puckline/pkg/logger"
)

// linesCmd represents the lines command
var linesCmd = &cobra.Command{
	Use:   "lines [team]",
	Short: "Fetch published line combinations for a team",
	Long: `Scrapes the current published line combinations for one team
and prints forward lines, defense pairs, power-play units and goalies.

Example:
  go run ./cmd/puckline lines TOR
  go run ./cmd/puckline lines EDM`,
	Args: cobra.ExactArgs(1),
	RunE: runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)
}

func runLines(cmd *cobra.Command, args []string) error {
	team := strings.ToUpper(args[0])

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	scraper := dailyfaceoff.New(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lines, err := scraper.TeamLines(ctx, team)
	if err != nil {
		return fmt.Errorf("fetch lines for %s: %w", team, err)
	}

	fmt.Printf("=== %s line combinations (%s) ===\n", lines.Team, lines.Source)

	printUnits("Forward lines", lines.ForwardLines)
	printUnits("Defense pairs", lines.DefensePairs)
	printUnits("Power play", lines.PowerPlay)

	if len(lines.Goalies) > 0 {
		fmt.Println("\nGoalies (starter first):")
		for _, name := range lines.Goalies {
			fmt.Printf("  %s\n", name)
		}
	}

	return nil
}

func printUnits(title string, units map[int][]string) {
	if len(units) == 0 {
		return
	}

	nums := make([]int, 0, len(units))
	for n := range units {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	fmt.Printf("\n%s:\n", title)
	for _, n := range nums {
		fmt.Printf("  %d: %s\n", n, strings.Join(units[n], " - "))
	}
}
