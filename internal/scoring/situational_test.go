package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hmelo/puckline/internal/contracts"
)

// fakeSchedule answers schedule questions from fixed maps, keyed by team.
type fakeSchedule struct {
	playedYesterday map[string]bool
	threeInThree    map[string]bool
	awayStreak      map[string]int
	daysRest        map[string]int
}

func (f *fakeSchedule) PlayedYesterday(team string, _ time.Time) bool {
	return f.playedYesterday[team]
}

func (f *fakeSchedule) ThreeInThreeNights(team string, _ time.Time) bool {
	return f.threeInThree[team]
}

func (f *fakeSchedule) ConsecutiveAwayGames(team string, _ time.Time) int {
	return f.awayStreak[team]
}

func (f *fakeSchedule) DaysSinceLastGame(team string, _ time.Time) int {
	if rest, ok := f.daysRest[team]; ok {
		return rest
	}
	return 1
}

func TestSituationalCalculator_Compute(t *testing.T) {
	gameTime := time.Date(2025, 1, 15, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		schedule fakeSchedule
		ctx      contracts.PlayerGameContext
		expected float64
	}{
		{
			name:     "neutral schedule scores dead average",
			schedule: fakeSchedule{},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", GameTime: gameTime},
			expected: 0.5,
		},
		{
			name:     "home ice only",
			schedule: fakeSchedule{},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", IsHome: true, GameTime: gameTime},
			expected: 0.53,
		},
		{
			name: "back to back on the road",
			schedule: fakeSchedule{
				playedYesterday: map[string]bool{"BOS": true},
			},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", GameTime: gameTime},
			expected: 0.42,
		},
		{
			name: "third game in three nights subsumes the b2b penalty",
			schedule: fakeSchedule{
				playedYesterday: map[string]bool{"BOS": true},
				threeInThree:    map[string]bool{"BOS": true},
			},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", GameTime: gameTime},
			expected: 0.35,
		},
		{
			name: "long road trip",
			schedule: fakeSchedule{
				awayStreak: map[string]int{"BOS": 6},
			},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", GameTime: gameTime},
			expected: 0.40,
		},
		{
			name: "shorter road trip",
			schedule: fakeSchedule{
				awayStreak: map[string]int{"BOS": 4},
			},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", GameTime: gameTime},
			expected: 0.45,
		},
		{
			name: "tired opposing goaltender",
			schedule: fakeSchedule{
				playedYesterday: map[string]bool{"MTL": true},
			},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", GameTime: gameTime},
			expected: 0.60,
		},
		{
			name: "well rested opposition",
			schedule: fakeSchedule{
				daysRest: map[string]int{"MTL": 4},
			},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", GameTime: gameTime},
			expected: 0.45,
		},
		{
			name: "opponent idle all window counts as rested",
			schedule: fakeSchedule{
				daysRest: map[string]int{"MTL": 7},
			},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", GameTime: gameTime},
			expected: 0.45,
		},
		{
			name: "adjustments stack",
			schedule: fakeSchedule{
				playedYesterday: map[string]bool{"MTL": true},
			},
			ctx:      contracts.PlayerGameContext{Team: "BOS", Opponent: "MTL", IsHome: true, GameTime: gameTime},
			expected: 0.63,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewSituationalCalculator(DefaultSituationalParams(), &tt.schedule)
			sub := calc.Compute(&tt.ctx)
			assert.InDelta(t, tt.expected, sub.Value, 0.0001)
		})
	}
}

func TestSituationalCalculator_Clamped(t *testing.T) {
	schedule := &fakeSchedule{
		threeInThree: map[string]bool{"BOS": true},
		awayStreak:   map[string]int{"BOS": 7},
		daysRest:     map[string]int{"MTL": 5},
	}
	calc := NewSituationalCalculator(DefaultSituationalParams(), schedule)

	sub := calc.Compute(&contracts.PlayerGameContext{
		Team: "BOS", Opponent: "MTL",
		GameTime: time.Date(2025, 1, 15, 19, 0, 0, 0, time.UTC),
	})
	// 0.5 - 0.15 - 0.10 - 0.05 = 0.20, still in range but every
	// penalty applied
	assert.InDelta(t, 0.20, sub.Value, 0.0001)
	assert.GreaterOrEqual(t, sub.Value, 0.0)
}
