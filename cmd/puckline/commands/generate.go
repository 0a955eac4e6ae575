package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hmelo/puckline/internal/pipeline"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate opportunity scores for a date or date range",
	Long: `Runs the prediction pipeline and persists ranked scores.

Single-date runs default to live mode (scheduled games only). Range
runs default to historical mode, which also accepts completed games so
past slates can be reconstructed.

Example:
  go run ./cmd/puckline generate
  go run ./cmd/puckline generate --date 2025-01-15
  go run ./cmd/puckline generate --from 2025-01-01 --to 2025-01-31
  go run ./cmd/puckline generate --date 2025-01-15 --dry-run --top 20`,
	RunE: runGenerate,
}

var (
	generateDate    string
	generateFrom    string
	generateTo      string
	generateMode    string
	generateTopN    int
	generateDryRun  bool
	generateTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateDate, "date", "", "analysis date (YYYY-MM-DD, default today)")
	generateCmd.Flags().StringVar(&generateFrom, "from", "", "range start (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&generateTo, "to", "", "range end (YYYY-MM-DD, inclusive)")
	generateCmd.Flags().StringVar(&generateMode, "mode", "", "live or historical (default: live for --date, historical for ranges)")
	generateCmd.Flags().IntVar(&generateTopN, "top", 10, "number of top picks to print")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "score without persisting")
	generateCmd.Flags().DurationVar(&generateTimeout, "timeout", 30*time.Minute, "overall run timeout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	isRange := generateFrom != "" || generateTo != ""
	if isRange && (generateFrom == "" || generateTo == "") {
		return fmt.Errorf("--from and --to must be set together")
	}
	if isRange && generateDate != "" {
		return fmt.Errorf("--date cannot be combined with --from/--to")
	}

	mode := generateMode
	if mode == "" {
		mode = pipeline.ModeLive
		if isRange {
			mode = pipeline.ModeHistorical
		}
	}
	if mode != pipeline.ModeLive && mode != pipeline.ModeHistorical {
		return fmt.Errorf("mode must be live or historical")
	}

	d, err := initDeps(!generateDryRun)
	if err != nil {
		return err
	}
	defer d.Close()

	if d.repo != nil {
		if err := d.repo.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	gen := d.newGenerator(pipeline.Options{Mode: mode, TopN: generateTopN}, generateDryRun)

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	if isRange {
		return runGenerateRange(ctx, gen)
	}
	return runGenerateDate(ctx, gen)
}

func runGenerateDate(ctx context.Context, gen *pipeline.Generator) error {
	date := time.Now()
	if generateDate != "" {
		parsed, err := time.Parse("2006-01-02", generateDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		date = parsed
	}

	result, err := gen.GenerateForDate(ctx, date)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	printDayResult(result)
	return nil
}

func runGenerateRange(ctx context.Context, gen *pipeline.Generator) error {
	from, err := time.Parse("2006-01-02", generateFrom)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	to, err := time.Parse("2006-01-02", generateTo)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}

	result, err := gen.GenerateRange(ctx, from, to)
	if err != nil {
		return fmt.Errorf("generate range: %w", err)
	}

	fmt.Printf("\n=== Range %s .. %s ===\n", result.From.Format("2006-01-02"), result.To.Format("2006-01-02"))
	fmt.Printf("Days processed: %d\n", len(result.Days))
	fmt.Printf("Total saved:    %d\n", result.TotalSaved)
	if len(result.FailedDates) > 0 {
		fmt.Printf("Failed dates:   %v\n", result.FailedDates)
	}
	return nil
}

func printDayResult(result *pipeline.DayResult) {
	fmt.Printf("\n=== %s ===\n", result.Date.Format("2006-01-02"))
	fmt.Printf("Games analyzed:   %d\n", result.GamesAnalyzed)
	fmt.Printf("Players analyzed: %d\n", result.PlayersAnalyzed)
	fmt.Printf("Saved:            %d\n", result.Saved)

	if result.Distribution != nil {
		fmt.Printf("Score range:      %.4f .. %.4f (mean %.4f)\n",
			result.Distribution.Min, result.Distribution.Max, result.Distribution.Mean)
	}

	if len(result.TopPicks) > 0 {
		fmt.Println("\nTop picks:")
		for i, pick := range result.TopPicks {
			fmt.Printf("  %2d. %-24s %s vs %s  %.4f  (%s)\n",
				i+1, pick.PlayerName, pick.Team, pick.Opponent, pick.FinalScore, pick.Confidence)
		}
	}
}
