package scoring

import (
	"github.com/hmelo/puckline/internal/contracts"
)

// RecentFormCalculator scores a skater's production over the recent
// pre-cutoff window, with a hard cap on points-per-game pace and a
// small streak bonus.
type RecentFormCalculator struct {
	params RecentFormParams
}

// NewRecentFormCalculator creates a calculator with the given
// parameters.
func NewRecentFormCalculator(params RecentFormParams) *RecentFormCalculator {
	return &RecentFormCalculator{params: params}
}

// Name implements Calculator
func (c *RecentFormCalculator) Name() string {
	return NameRecentForm
}

// Compute implements Calculator. The context's recent window must
// already be restricted to games strictly before the analysis date.
func (c *RecentFormCalculator) Compute(pgc *contracts.PlayerGameContext) contracts.SubScore {
	p := c.params

	recent := pgc.Recent
	rawPPG := recent.PPG

	fallback := "none"
	if recent.Games < p.MinRecentGames {
		// Thin window: fall back to season pace, or a below-average
		// default when the player has no season data either
		if pgc.SeasonStat.Games > 0 {
			rawPPG = float64(pgc.SeasonStat.Points) / float64(pgc.SeasonStat.Games)
			fallback = "season_ppg"
		} else {
			rawPPG = p.LeagueAvgPPG * p.UnknownPlayerFactor
			fallback = "unknown_player"
		}
	}

	// Pace above the cap earns nothing extra
	cappedPPG := rawPPG
	wasCapped := rawPPG > p.PPGCap
	if wasCapped {
		cappedPPG = p.PPGCap
	}

	normalizedPPG := cappedPPG / p.ElitePPG
	if normalizedPPG > 1.0 {
		normalizedPPG = 1.0
	}

	streakBonus := 0.0
	switch {
	case recent.PointStreak >= 5:
		streakBonus = p.StreakBonus5
	case recent.PointStreak >= 3:
		streakBonus = p.StreakBonus3
	}

	score := clamp01(normalizedPPG + streakBonus)

	goalRatio := 0.0
	if recent.Points > 0 {
		goalRatio = float64(recent.Goals) / float64(recent.Points)
	}

	return contracts.SubScore{
		Value: round4(score),
		Breakdown: contracts.Breakdown{
			"recent_games":   recent.Games,
			"recent_points":  recent.Points,
			"recent_goals":   recent.Goals,
			"recent_assists": recent.Assists,
			"point_streak":   recent.PointStreak,
			"goal_ratio":     round4(goalRatio),
			"fallback":       fallback,
			"raw_ppg":        round4(rawPPG),
			"capped_ppg":     round4(cappedPPG),
			"ppg_was_capped": wasCapped,
			"normalized_ppg": round4(normalizedPPG),
			"streak_bonus":   streakBonus,
		},
	}
}
