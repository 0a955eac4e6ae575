package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmelo/puckline/internal/contracts"
)

func TestRecentFormCalculator_Compute(t *testing.T) {
	calc := NewRecentFormCalculator(DefaultRecentFormParams())

	t.Run("average producer", func(t *testing.T) {
		sub := calc.Compute(&contracts.PlayerGameContext{
			Recent: contracts.RecentWindow{Games: 10, Points: 5, PPG: 0.5},
		})
		// 0.5 / 1.5
		assert.InDelta(t, 0.3333, sub.Value, 0.0001)
		assert.Equal(t, false, sub.Breakdown["ppg_was_capped"])
	})

	t.Run("elite pace saturates at the benchmark", func(t *testing.T) {
		sub := calc.Compute(&contracts.PlayerGameContext{
			Recent: contracts.RecentWindow{Games: 10, Points: 15, PPG: 1.5},
		})
		assert.InDelta(t, 1.0, sub.Value, 0.0001)
	})

	t.Run("streak bonuses", func(t *testing.T) {
		threeGame := calc.Compute(&contracts.PlayerGameContext{
			Recent: contracts.RecentWindow{Games: 10, Points: 5, PPG: 0.5, PointStreak: 3},
		})
		fiveGame := calc.Compute(&contracts.PlayerGameContext{
			Recent: contracts.RecentWindow{Games: 10, Points: 5, PPG: 0.5, PointStreak: 5},
		})
		assert.InDelta(t, 0.3533, threeGame.Value, 0.0001)
		assert.InDelta(t, 0.3833, fiveGame.Value, 0.0001)
	})
}

func TestRecentFormCalculator_PPGCapParity(t *testing.T) {
	calc := NewRecentFormCalculator(DefaultRecentFormParams())

	// A 3.0 pace and a 2.0 pace must score identically: hot streaks
	// beyond the cap are noise, not signal
	torrid := calc.Compute(&contracts.PlayerGameContext{
		Recent: contracts.RecentWindow{Games: 10, Points: 30, PPG: 3.0},
	})
	capped := calc.Compute(&contracts.PlayerGameContext{
		Recent: contracts.RecentWindow{Games: 10, Points: 20, PPG: 2.0},
	})

	assert.Equal(t, capped.Value, torrid.Value)
	assert.Equal(t, true, torrid.Breakdown["ppg_was_capped"])
	assert.Equal(t, false, capped.Breakdown["ppg_was_capped"])
	assert.InDelta(t, 2.0, torrid.Breakdown["capped_ppg"].(float64), 0.0001)
}

func TestRecentFormCalculator_Fallbacks(t *testing.T) {
	calc := NewRecentFormCalculator(DefaultRecentFormParams())

	t.Run("thin recent window falls back to season pace", func(t *testing.T) {
		sub := calc.Compute(&contracts.PlayerGameContext{
			Recent:     contracts.RecentWindow{Games: 2, Points: 4, PPG: 2.0},
			SeasonStat: contracts.SeasonAggregate{Games: 40, Points: 30},
		})
		assert.Equal(t, "season_ppg", sub.Breakdown["fallback"])
		assert.InDelta(t, 0.75, sub.Breakdown["raw_ppg"].(float64), 0.0001)
		// 0.75 / 1.5
		assert.InDelta(t, 0.5, sub.Value, 0.0001)
	})

	t.Run("unknown player scores below league average", func(t *testing.T) {
		sub := calc.Compute(&contracts.PlayerGameContext{})
		assert.Equal(t, "unknown_player", sub.Breakdown["fallback"])
		// 0.50 * 0.5 = 0.25 PPG
		assert.InDelta(t, 0.25, sub.Breakdown["raw_ppg"].(float64), 0.0001)
		assert.InDelta(t, 0.1667, sub.Value, 0.0001)
	})
}
