// Package store persists predictions to PostgreSQL. One row per
// (player, game, analysis date); re-running a date upserts in place so
// historical backfills are idempotent.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmelo/puckline/internal/contracts"
)

// Repository is the prediction store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a repository over a connection pool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the predictions table and its indexes when they
// do not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS daily_predictions (
			id              BIGSERIAL PRIMARY KEY,
			player_id       BIGINT NOT NULL,
			player_name     TEXT NOT NULL,
			team            TEXT NOT NULL,
			position        TEXT NOT NULL,
			game_id         BIGINT NOT NULL,
			opponent        TEXT NOT NULL,
			is_home         BOOLEAN NOT NULL,
			season          TEXT NOT NULL,
			analysis_date   DATE NOT NULL,
			game_time       TIMESTAMPTZ,
			line_number     INTEGER NOT NULL,
			pp_unit         INTEGER NOT NULL,
			final_score     NUMERIC(8,4) NOT NULL,
			rank            INTEGER NOT NULL,
			confidence      TEXT NOT NULL,
			components      JSONB NOT NULL,
			weights         JSONB NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (player_id, game_id, analysis_date)
		);
		CREATE INDEX IF NOT EXISTS idx_daily_predictions_date_rank
			ON daily_predictions (analysis_date, rank);
		CREATE INDEX IF NOT EXISTS idx_daily_predictions_player
			ON daily_predictions (player_id, analysis_date)`

	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure predictions schema: %w", err)
	}
	return nil
}

// SavePredictions upserts a batch of predictions, returning the number
// written.
func (r *Repository) SavePredictions(ctx context.Context, predictions []contracts.Prediction) (int, error) {
	if len(predictions) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO daily_predictions
			(player_id, player_name, team, position, game_id, opponent, is_home,
			 season, analysis_date, game_time, line_number, pp_unit,
			 final_score, rank, confidence, components, weights, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (player_id, game_id, analysis_date) DO UPDATE SET
			player_name = EXCLUDED.player_name,
			team = EXCLUDED.team,
			position = EXCLUDED.position,
			opponent = EXCLUDED.opponent,
			is_home = EXCLUDED.is_home,
			season = EXCLUDED.season,
			game_time = EXCLUDED.game_time,
			line_number = EXCLUDED.line_number,
			pp_unit = EXCLUDED.pp_unit,
			final_score = EXCLUDED.final_score,
			rank = EXCLUDED.rank,
			confidence = EXCLUDED.confidence,
			components = EXCLUDED.components,
			weights = EXCLUDED.weights,
			created_at = EXCLUDED.created_at`

	batch := &pgx.Batch{}
	for _, p := range predictions {
		components, err := json.Marshal(p.Components)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal components for player %d: %w", p.Context.PlayerID, err)
		}
		weights, err := json.Marshal(p.Weights)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal weights for player %d: %w", p.Context.PlayerID, err)
		}

		batch.Queue(query,
			p.Context.PlayerID, p.Context.PlayerName, p.Context.Team, p.Context.Position,
			p.Context.GameID, p.Context.Opponent, p.Context.IsHome,
			p.Context.Season, p.Context.AnalysisDate, p.Context.GameTime,
			p.Context.LineNumber, p.Context.PPUnit,
			p.FinalScore, p.Rank, p.Confidence, components, weights, p.CreatedAt,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range predictions {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("failed to upsert prediction: %w", err)
		}
	}

	return len(predictions), nil
}

// PredictionsByDate returns a day's predictions in rank order.
func (r *Repository) PredictionsByDate(ctx context.Context, date time.Time) ([]contracts.Prediction, error) {
	query := `
		SELECT player_id, player_name, team, position, game_id, opponent, is_home,
			   season, analysis_date, game_time, line_number, pp_unit,
			   final_score, rank, confidence, components, weights, created_at
		FROM daily_predictions
		WHERE analysis_date = $1
		ORDER BY rank`

	rows, err := r.pool.Query(ctx, query, contracts.Day(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []contracts.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}

	return predictions, rows.Err()
}

// TopByDate returns the day's best n predictions as previews.
func (r *Repository) TopByDate(ctx context.Context, date time.Time, n int) ([]contracts.TopPreview, error) {
	query := `
		SELECT player_name, team, opponent, final_score, confidence
		FROM daily_predictions
		WHERE analysis_date = $1
		ORDER BY rank
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, contracts.Day(date), n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top predictions: %w", err)
	}
	defer rows.Close()

	var picks []contracts.TopPreview
	for rows.Next() {
		var p contracts.TopPreview
		if err := rows.Scan(&p.PlayerName, &p.Team, &p.Opponent, &p.FinalScore, &p.Confidence); err != nil {
			return nil, err
		}
		picks = append(picks, p)
	}

	return picks, rows.Err()
}

// ConfidenceCounts returns how many predictions each confidence tier
// holds for a date.
func (r *Repository) ConfidenceCounts(ctx context.Context, date time.Time) (map[string]int, error) {
	query := `
		SELECT confidence, COUNT(*)
		FROM daily_predictions
		WHERE analysis_date = $1
		GROUP BY confidence`

	rows, err := r.pool.Query(ctx, query, contracts.Day(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query confidence counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tier string
		var count int
		if err := rows.Scan(&tier, &count); err != nil {
			return nil, err
		}
		counts[tier] = count
	}

	return counts, rows.Err()
}

// DeleteByDate removes a day's predictions, used before an intentional
// clean rebuild.
func (r *Repository) DeleteByDate(ctx context.Context, date time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM daily_predictions WHERE analysis_date = $1`, contracts.Day(date))
	if err != nil {
		return 0, fmt.Errorf("failed to delete predictions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPrediction(rows pgx.Rows) (contracts.Prediction, error) {
	var p contracts.Prediction
	var components, weights []byte

	if err := rows.Scan(
		&p.Context.PlayerID, &p.Context.PlayerName, &p.Context.Team, &p.Context.Position,
		&p.Context.GameID, &p.Context.Opponent, &p.Context.IsHome,
		&p.Context.Season, &p.Context.AnalysisDate, &p.Context.GameTime,
		&p.Context.LineNumber, &p.Context.PPUnit,
		&p.FinalScore, &p.Rank, &p.Confidence, &components, &weights, &p.CreatedAt,
	); err != nil {
		return p, fmt.Errorf("failed to scan prediction: %w", err)
	}

	if err := json.Unmarshal(components, &p.Components); err != nil {
		return p, fmt.Errorf("failed to unmarshal components: %w", err)
	}
	if err := json.Unmarshal(weights, &p.Weights); err != nil {
		return p, fmt.Errorf("failed to unmarshal weights: %w", err)
	}

	return p, nil
}
