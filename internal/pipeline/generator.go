// Package pipeline orchestrates one prediction run: slate discovery,
// universe construction, enrichment, scoring, ranking and persistence.
// The same path serves live generation for today's slate and historical
// reconstruction for any past date.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/internal/enrich"
	"github.com/hmelo/puckline/internal/schedule"
	"github.com/hmelo/puckline/internal/scoring"
	"github.com/hmelo/puckline/internal/svg"
	"github.com/hmelo/puckline/pkg/logger"
)

// Run modes. Live runs score only games still to be played; historical
// runs accept completed games so past slates can be reconstructed.
const (
	ModeLive       = "live"
	ModeHistorical = "historical"
)

// PredictionStore persists a day's predictions. Implemented by the
// postgres repository; faked in tests.
type PredictionStore interface {
	SavePredictions(ctx context.Context, predictions []contracts.Prediction) (int, error)
}

// Options tunes one generator instance.
type Options struct {
	// Mode selects which game statuses enter the slate
	Mode string
	// TopN bounds the preview list in the day result
	TopN int
	// LookbackDays bounds the skater-vs-goalie history build
	LookbackDays int
}

// DefaultOptions returns live-mode defaults.
func DefaultOptions() Options {
	return Options{
		Mode:         ModeLive,
		TopN:         10,
		LookbackDays: svg.DefaultLookbackDays,
	}
}

// Distribution summarizes a day's final scores.
type Distribution struct {
	Mean         float64        `json:"mean"`
	Min          float64        `json:"min"`
	Max          float64        `json:"max"`
	ByConfidence map[string]int `json:"by_confidence"`
}

// DayResult is the outcome of one generation run.
type DayResult struct {
	Date            time.Time              `json:"date"`
	GamesAnalyzed   int                    `json:"games_analyzed"`
	PlayersAnalyzed int                    `json:"players_analyzed"`
	Saved           int                    `json:"saved"`
	Predictions     []contracts.Prediction `json:"predictions"`
	TopPicks        []contracts.TopPreview `json:"top_picks"`
	Distribution    *Distribution          `json:"distribution,omitempty"`
}

// RangeResult aggregates a historical run over several dates.
type RangeResult struct {
	From        time.Time   `json:"from"`
	To          time.Time   `json:"to"`
	Days        []DayResult `json:"days"`
	FailedDates []string    `json:"failed_dates,omitempty"`
	TotalSaved  int         `json:"total_saved"`
}

// Generator runs the prediction pipeline.
type Generator struct {
	provider contracts.DataProvider
	builder  *enrich.Builder
	store    PredictionStore
	weights  scoring.Weights
	opts     Options
	log      *logger.Logger
}

// NewGenerator creates a generator. Store may be nil for dry runs; the
// result then carries the predictions without persisting them.
func NewGenerator(
	provider contracts.DataProvider,
	builder *enrich.Builder,
	store PredictionStore,
	weights scoring.Weights,
	opts Options,
	log *logger.Logger,
) *Generator {
	if opts.TopN <= 0 {
		opts.TopN = DefaultOptions().TopN
	}
	if opts.LookbackDays <= 0 {
		opts.LookbackDays = DefaultOptions().LookbackDays
	}
	if opts.Mode == "" {
		opts.Mode = ModeLive
	}
	return &Generator{
		provider: provider,
		builder:  builder,
		store:    store,
		weights:  weights,
		opts:     opts,
		log:      log,
	}
}

// GenerateForDate runs the full pipeline for one analysis date. A date
// with no eligible games is a successful run with zero players.
func (g *Generator) GenerateForDate(ctx context.Context, date time.Time) (*DayResult, error) {
	day := contracts.Day(date)
	start := time.Now()

	g.log.WithFields(map[string]interface{}{
		"date": day.Format("2006-01-02"),
		"mode": g.opts.Mode,
	}).Info("Generation started")

	allGames, err := g.provider.GamesByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load slate for %s: %w", day.Format("2006-01-02"), err)
	}

	games := g.eligibleGames(allGames)
	if len(games) == 0 {
		g.log.WithField("date", day.Format("2006-01-02")).Info("No eligible games, nothing to score")
		return &DayResult{Date: day}, nil
	}

	history, err := svg.Build(ctx, g.provider, day.AddDate(0, 0, -g.opts.LookbackDays), day, g.log)
	if err != nil {
		return nil, err
	}

	analyzer, err := schedule.Load(ctx, g.provider, day, g.log)
	if err != nil {
		return nil, err
	}

	universe, err := g.builder.BuildUniverse(ctx, games, day, history)
	if err != nil {
		return nil, err
	}

	universe, err = g.builder.EnrichRecentForm(ctx, universe)
	if err != nil {
		return nil, err
	}

	aggregator := scoring.NewAggregator([]scoring.Calculator{
		scoring.NewLineOpportunityCalculator(scoring.DefaultLineOpportunityParams()),
		scoring.NewSituationalCalculator(scoring.DefaultSituationalParams(), analyzer),
		scoring.NewRecentFormCalculator(scoring.DefaultRecentFormParams()),
		scoring.NewMatchupCalculator(scoring.DefaultMatchupParams()),
	}, g.weights)

	predictions := make([]contracts.Prediction, 0, len(universe))
	for i := range universe {
		predictions = append(predictions, aggregator.Score(&universe[i]))
	}
	rank(predictions)

	saved := 0
	if g.store != nil {
		saved, err = g.store.SavePredictions(ctx, predictions)
		if err != nil {
			return nil, fmt.Errorf("failed to persist predictions for %s: %w", day.Format("2006-01-02"), err)
		}
	}

	result := &DayResult{
		Date:            day,
		GamesAnalyzed:   len(games),
		PlayersAnalyzed: len(predictions),
		Saved:           saved,
		Predictions:     predictions,
		TopPicks:        topPicks(predictions, g.opts.TopN),
		Distribution:    distribution(predictions),
	}

	g.log.WithFields(map[string]interface{}{
		"date":     day.Format("2006-01-02"),
		"games":    result.GamesAnalyzed,
		"players":  result.PlayersAnalyzed,
		"saved":    saved,
		"duration": time.Since(start).String(),
	}).Info("Generation finished")

	return result, nil
}

// GenerateRange reconstructs every date in [from, to] inclusive. A
// failing date is recorded and skipped so one bad day does not abort a
// season-long backfill.
func (g *Generator) GenerateRange(ctx context.Context, from, to time.Time) (*RangeResult, error) {
	first := contracts.Day(from)
	last := contracts.Day(to)
	if last.Before(first) {
		return nil, fmt.Errorf("invalid range: %s is before %s", last.Format("2006-01-02"), first.Format("2006-01-02"))
	}

	result := &RangeResult{From: first, To: last}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		day, err := g.GenerateForDate(ctx, d)
		if err != nil {
			g.log.WithError(err).WithField("date", d.Format("2006-01-02")).Error("Date failed, continuing range")
			result.FailedDates = append(result.FailedDates, d.Format("2006-01-02"))
			continue
		}
		result.Days = append(result.Days, *day)
		result.TotalSaved += day.Saved
	}

	return result, nil
}

// eligibleGames filters the slate by run mode. Historical runs accept
// completed and scheduled games alike; live runs only score games not
// yet started.
func (g *Generator) eligibleGames(games []contracts.Game) []contracts.Game {
	eligible := make([]contracts.Game, 0, len(games))
	for _, game := range games {
		switch game.Status {
		case contracts.StatusScheduled:
			eligible = append(eligible, game)
		case contracts.StatusInProgress, contracts.StatusFinal, contracts.StatusFinalOT, contracts.StatusFinalSO:
			if g.opts.Mode == ModeHistorical {
				eligible = append(eligible, game)
			}
		}
	}
	return eligible
}

// rank orders predictions by final score descending, ties broken by
// player id for run-to-run stability, and assigns 1-based ranks.
func rank(predictions []contracts.Prediction) {
	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].FinalScore != predictions[j].FinalScore {
			return predictions[i].FinalScore > predictions[j].FinalScore
		}
		return predictions[i].Context.PlayerID < predictions[j].Context.PlayerID
	})
	for i := range predictions {
		predictions[i].Rank = i + 1
	}
}

func topPicks(predictions []contracts.Prediction, n int) []contracts.TopPreview {
	if n > len(predictions) {
		n = len(predictions)
	}
	picks := make([]contracts.TopPreview, 0, n)
	for _, p := range predictions[:n] {
		picks = append(picks, contracts.TopPreview{
			PlayerName: p.Context.PlayerName,
			Team:       p.Context.Team,
			Opponent:   p.Context.Opponent,
			FinalScore: p.FinalScore,
			Confidence: p.Confidence,
		})
	}
	return picks
}

func distribution(predictions []contracts.Prediction) *Distribution {
	if len(predictions) == 0 {
		return nil
	}

	d := &Distribution{
		Min:          predictions[0].FinalScore,
		Max:          predictions[0].FinalScore,
		ByConfidence: make(map[string]int),
	}
	var sum float64
	for _, p := range predictions {
		sum += p.FinalScore
		if p.FinalScore < d.Min {
			d.Min = p.FinalScore
		}
		if p.FinalScore > d.Max {
			d.Max = p.FinalScore
		}
		d.ByConfidence[p.Confidence]++
	}
	d.Mean = sum / float64(len(predictions))
	return d
}
