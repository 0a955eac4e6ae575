package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmelo/puckline/internal/contracts"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func testPrediction(playerID, gameID int64, date time.Time, score float64, rank int) contracts.Prediction {
	return contracts.Prediction{
		Context: contracts.PlayerGameContext{
			PlayerID:     playerID,
			PlayerName:   "Test Player",
			Team:         "BOS",
			Position:     contracts.PositionCenter,
			GameID:       gameID,
			Opponent:     "MTL",
			IsHome:       true,
			Season:       "2025",
			AnalysisDate: date,
			GameTime:     date.Add(19 * time.Hour),
			LineNumber:   1,
			PPUnit:       1,
		},
		FinalScore: score,
		Rank:       rank,
		Confidence: "high",
		Components: contracts.ComponentScores{
			"line_opportunity": {Value: score, Breakdown: contracts.Breakdown{"role_tier": "elite"}},
		},
		Weights:   map[string]float64{"line_opportunity": 1.0},
		CreatedAt: time.Now().UTC(),
	}
}

func TestRepository_SaveAndQuery(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))

	date := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	t.Cleanup(func() {
		_, _ = repo.DeleteByDate(ctx, date)
	})

	saved, err := repo.SavePredictions(ctx, []contracts.Prediction{
		testPrediction(1, 100, date, 0.8, 1),
		testPrediction(2, 100, date, 0.6, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)

	predictions, err := repo.PredictionsByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, int64(1), predictions[0].Context.PlayerID)
	assert.InDelta(t, 0.8, predictions[0].FinalScore, 0.0001)
	assert.Equal(t, "elite", predictions[0].Components["line_opportunity"].Breakdown["role_tier"])

	picks, err := repo.TopByDate(ctx, date, 1)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, "Test Player", picks[0].PlayerName)

	counts, err := repo.ConfidenceCounts(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["high"])
}

func TestRepository_UpsertOverwrites(t *testing.T) {
	pool := testPool(t)
	repo := NewRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))

	date := time.Date(2015, 3, 2, 0, 0, 0, 0, time.UTC)
	t.Cleanup(func() {
		_, _ = repo.DeleteByDate(ctx, date)
	})

	_, err := repo.SavePredictions(ctx, []contracts.Prediction{
		testPrediction(1, 100, date, 0.5, 3),
	})
	require.NoError(t, err)

	// Re-running the date replaces the row, not duplicates it
	_, err = repo.SavePredictions(ctx, []contracts.Prediction{
		testPrediction(1, 100, date, 0.9, 1),
	})
	require.NoError(t, err)

	predictions, err := repo.PredictionsByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.InDelta(t, 0.9, predictions[0].FinalScore, 0.0001)
	assert.Equal(t, 1, predictions[0].Rank)
}

func TestRepository_EmptyBatch(t *testing.T) {
	repo := NewRepository(nil)
	saved, err := repo.SavePredictions(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, saved)
}
