package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmelo/puckline/internal/contracts"
)

// stubCalculator returns a fixed value under a fixed name.
type stubCalculator struct {
	name  string
	value float64
}

func (s stubCalculator) Name() string { return s.name }

func (s stubCalculator) Compute(_ *contracts.PlayerGameContext) contracts.SubScore {
	return contracts.SubScore{Value: s.value, Breakdown: contracts.Breakdown{}}
}

func TestAggregator_Score(t *testing.T) {
	calcs := []Calculator{
		stubCalculator{NameLineOpportunity, 0.8},
		stubCalculator{NameSituational, 0.5},
		stubCalculator{NameRecentForm, 0.6},
		stubCalculator{NameMatchup, 0.4},
	}
	agg := NewAggregator(calcs, DefaultWeights())

	t.Run("forward uses the base weights", func(t *testing.T) {
		pred := agg.Score(&contracts.PlayerGameContext{Position: contracts.PositionCenter})
		// 0.8*0.45 + 0.5*0.25 + 0.6*0.20 + 0.4*0.10
		assert.InDelta(t, 0.645, pred.FinalScore, 0.0001)
		require.Len(t, pred.Components, 4)
		assert.InDelta(t, 1.0, sumWeights(pred.Weights), 0.001)
	})

	t.Run("defenseman overrides shift weight to deployment", func(t *testing.T) {
		pred := agg.Score(&contracts.PlayerGameContext{Position: contracts.PositionDefense})
		// 0.8*0.50 + 0.5*0.25 + 0.6*0.15 + 0.4*0.10
		assert.InDelta(t, 0.655, pred.FinalScore, 0.0001)
	})

	t.Run("final score stays in range at the extremes", func(t *testing.T) {
		high := NewAggregator([]Calculator{
			stubCalculator{NameLineOpportunity, 1.0},
			stubCalculator{NameSituational, 1.0},
			stubCalculator{NameRecentForm, 1.0},
			stubCalculator{NameMatchup, 1.0},
		}, DefaultWeights())
		pred := high.Score(&contracts.PlayerGameContext{Position: contracts.PositionCenter})
		assert.InDelta(t, 1.0, pred.FinalScore, 0.0001)
	})
}

func TestAggregator_MissingCalculatorRedistributes(t *testing.T) {
	// Drop the matchup calculator entirely; its 10 points spread over
	// the remaining three instead of deflating the final score
	calcs := []Calculator{
		stubCalculator{NameLineOpportunity, 0.5},
		stubCalculator{NameSituational, 0.5},
		stubCalculator{NameRecentForm, 0.5},
	}
	agg := NewAggregator(calcs, DefaultWeights())

	pred := agg.Score(&contracts.PlayerGameContext{Position: contracts.PositionCenter})
	assert.InDelta(t, 0.5, pred.FinalScore, 0.0001)
	assert.InDelta(t, 1.0, sumWeights(pred.Weights), 0.001)
	assert.NotContains(t, pred.Weights, NameMatchup)
}

func TestConfidenceTier(t *testing.T) {
	tests := []struct {
		name     string
		ctx      contracts.PlayerGameContext
		expected string
	}{
		{
			"top line pp1 on a streak",
			contracts.PlayerGameContext{
				LineNumber: 1, PPUnit: 1,
				Recent: contracts.RecentWindow{Games: 10, PPG: 0.9, PointStreak: 3},
			},
			ConfidenceVeryHigh,
		},
		{
			"top six with pp time",
			contracts.PlayerGameContext{
				LineNumber: 2, PPUnit: 2,
				Recent: contracts.RecentWindow{Games: 8, PPG: 0.4},
			},
			ConfidenceHigh,
		},
		{
			"top six producing without pp time",
			contracts.PlayerGameContext{
				LineNumber: 2,
				Recent:     contracts.RecentWindow{Games: 6, PPG: 0.7},
			},
			ConfidenceHigh,
		},
		{
			"middle six with data",
			contracts.PlayerGameContext{
				LineNumber: 3,
				Recent:     contracts.RecentWindow{Games: 4, PPG: 0.3},
			},
			ConfidenceMedium,
		},
		{
			"depth player",
			contracts.PlayerGameContext{
				LineNumber: 4,
				Recent:     contracts.RecentWindow{Games: 10, PPG: 0.2},
			},
			ConfidenceLow,
		},
		{
			"top liner with almost no data",
			contracts.PlayerGameContext{
				LineNumber: 1,
				Recent:     contracts.RecentWindow{Games: 2},
			},
			ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, confidenceTier(&tt.ctx))
		})
	}
}

func sumWeights(weights map[string]float64) float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	return total
}
