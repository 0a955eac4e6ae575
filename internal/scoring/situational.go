package scoring

import (
	"time"

	"github.com/hmelo/puckline/internal/contracts"
)

// ScheduleFacts answers schedule-density questions for a team on a
// date, computed from a window around the analysis date. Implemented by
// the schedule analyzer; faked in tests.
type ScheduleFacts interface {
	// PlayedYesterday reports whether the team played the prior day
	PlayedYesterday(team string, date time.Time) bool
	// ThreeInThreeNights reports whether the date is the team's third
	// game in three consecutive nights
	ThreeInThreeNights(team string, date time.Time) bool
	// ConsecutiveAwayGames counts the away streak including this game
	ConsecutiveAwayGames(team string, date time.Time) int
	// DaysSinceLastGame returns days since the team last played; a team
	// with no prior game in the window reads as fully rested
	DaysSinceLastGame(team string, date time.Time) int
}

// SituationalCalculator scores schedule-driven context: home ice, rest
// disadvantage, road-trip fatigue, and the opposing goaltender's
// schedule.
type SituationalCalculator struct {
	params   SituationalParams
	schedule ScheduleFacts
}

// NewSituationalCalculator creates a calculator over the given schedule
// facts.
func NewSituationalCalculator(params SituationalParams, schedule ScheduleFacts) *SituationalCalculator {
	return &SituationalCalculator{params: params, schedule: schedule}
}

// Name implements Calculator
func (c *SituationalCalculator) Name() string {
	return NameSituational
}

// Compute implements Calculator. Starts from a neutral 0.5 and applies
// additive adjustments, so a team with no schedule quirks scores dead
// average.
func (c *SituationalCalculator) Compute(pgc *contracts.PlayerGameContext) contracts.SubScore {
	p := c.params
	date := contracts.Day(pgc.GameTime)

	score := 0.5
	adjustments := contracts.Breakdown{}

	if pgc.IsHome {
		score += p.HomeBonus
		adjustments["home_bonus"] = p.HomeBonus
	}

	// Own-team fatigue. The third game in three nights subsumes the
	// plain back-to-back penalty.
	if c.schedule.ThreeInThreeNights(pgc.Team, date) {
		score += p.B2B2BPenalty
		adjustments["b2b2b_penalty"] = p.B2B2BPenalty
	} else if c.schedule.PlayedYesterday(pgc.Team, date) {
		score += p.B2BPenalty
		adjustments["b2b_penalty"] = p.B2BPenalty
	}

	awayStreak := c.schedule.ConsecutiveAwayGames(pgc.Team, date)
	switch {
	case awayStreak >= 6:
		score += p.RoadTrip6Penalty
		adjustments["road_trip_penalty"] = p.RoadTrip6Penalty
	case awayStreak >= 4:
		score += p.RoadTrip4Penalty
		adjustments["road_trip_penalty"] = p.RoadTrip4Penalty
	}

	// Opposing goaltender's schedule, read off the opponent's team
	// schedule: a goaltender on a back-to-back is beatable, a
	// well-rested one is not.
	if c.schedule.PlayedYesterday(pgc.Opponent, date) {
		score += p.GoalieB2BBoost
		adjustments["goalie_b2b_boost"] = p.GoalieB2BBoost
	} else if rest := c.schedule.DaysSinceLastGame(pgc.Opponent, date); rest >= p.RestedGoalieDays {
		score += p.RestedGoaliePenalty
		adjustments["rested_goalie_penalty"] = p.RestedGoaliePenalty
	}

	final := clamp01(score)

	return contracts.SubScore{
		Value: round4(final),
		Breakdown: contracts.Breakdown{
			"base":            0.5,
			"is_home":         pgc.IsHome,
			"away_streak":     awayStreak,
			"adjustments":     adjustments,
			"pre_clamp_score": round4(score),
		},
	}
}
