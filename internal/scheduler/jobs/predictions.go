package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/hmelo/puckline/internal/pipeline"
	"github.com/hmelo/puckline/pkg/logger"
)

// MorningPredictionsJob generates the first slate of predictions for
// today's games. Runs before lineups are confirmed, so roles come from
// aggregate-stat inference for most teams.
// Schedule: 10:00 AM daily
type MorningPredictionsJob struct {
	generator *pipeline.Generator
	logger    *logger.Logger
}

// NewMorningPredictionsJob creates a new morning predictions job
func NewMorningPredictionsJob(gen *pipeline.Generator, log *logger.Logger) *MorningPredictionsJob {
	return &MorningPredictionsJob{
		generator: gen,
		logger:    log,
	}
}

// Name returns the job name
func (j *MorningPredictionsJob) Name() string {
	return "morning_predictions"
}

// Schedule returns the cron schedule (10:00 AM daily)
func (j *MorningPredictionsJob) Schedule() string {
	return "0 0 10 * * *" // 10:00 AM daily (with seconds)
}

// Run generates and persists predictions for today's slate
func (j *MorningPredictionsJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled morning prediction run")

	result, err := j.generator.GenerateForDate(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("morning prediction run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"games":   result.GamesAnalyzed,
		"players": result.PlayersAnalyzed,
		"saved":   result.Saved,
	}).Info("Morning prediction run completed")

	return nil
}

// LineupRefreshJob re-runs prediction generation in the late afternoon,
// when published line combinations and starting goaltenders have mostly
// settled. The upsert semantics of the store replace the morning rows.
// Schedule: 4:30 PM daily
type LineupRefreshJob struct {
	generator *pipeline.Generator
	logger    *logger.Logger
}

// NewLineupRefreshJob creates a new lineup refresh job
func NewLineupRefreshJob(gen *pipeline.Generator, log *logger.Logger) *LineupRefreshJob {
	return &LineupRefreshJob{
		generator: gen,
		logger:    log,
	}
}

// Name returns the job name
func (j *LineupRefreshJob) Name() string {
	return "lineup_refresh"
}

// Schedule returns the cron schedule (4:30 PM daily)
func (j *LineupRefreshJob) Schedule() string {
	return "0 30 16 * * *" // 4:30 PM daily (with seconds)
}

// Run regenerates predictions with the latest lineup information
func (j *LineupRefreshJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled lineup refresh run")

	result, err := j.generator.GenerateForDate(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("lineup refresh run: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"games":   result.GamesAnalyzed,
		"players": result.PlayersAnalyzed,
		"saved":   result.Saved,
	}).Info("Lineup refresh run completed")

	return nil
}
