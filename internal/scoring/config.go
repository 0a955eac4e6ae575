package scoring

import (
	"github.com/hmelo/puckline/pkg/config"
)

// LineOpportunityParams holds the constant tables behind the
// line-opportunity calculator. Injected rather than embedded so
// calibration can retune them without touching calculator logic.
type LineOpportunityParams struct {
	// Discrete tier score by even-strength line
	LineScores map[int]float64
	// Bonus by power-play unit
	PPBonuses map[int]float64

	// Component weights, sum to 1.0
	LineWeight float64
	PPWeight   float64
	TOIWeight  float64

	// TOI benchmarks in minutes per game
	EliteTOI float64
	MinTOI   float64

	// Multiplier on the PP component for defensemen quarterbacking PP1
	DefensePP1Boost float64
}

// DefaultLineOpportunityParams returns the calibrated defaults.
func DefaultLineOpportunityParams() LineOpportunityParams {
	return LineOpportunityParams{
		LineScores: map[int]float64{
			1: 1.00,
			2: 0.70,
			3: 0.40,
			4: 0.15,
		},
		PPBonuses: map[int]float64{
			0: 0.00,
			1: 0.30,
			2: 0.15,
		},
		LineWeight:      0.50,
		PPWeight:        0.35,
		TOIWeight:       0.15,
		EliteTOI:        22.0,
		MinTOI:          8.0,
		DefensePP1Boost: 1.20,
	}
}

// RecentFormParams holds the constants behind the recent-form
// calculator.
type RecentFormParams struct {
	// League-average and elite points-per-game benchmarks
	LeagueAvgPPG float64
	ElitePPG     float64

	// PPG above this earns no extra credit. Players above a 3.0 pace
	// hit at a lower rate than the 2.0-3.0 band, so raw hot-streak
	// pace beyond the cap over-weights players about to cool off.
	PPGCap float64

	// Streak bonuses, deliberately small for the same reason
	StreakBonus3 float64
	StreakBonus5 float64

	// Fewer recent games than this falls back to season PPG
	MinRecentGames int

	// Scale applied to the league average when even season data is
	// absent; penalizes unknown players instead of treating them as
	// average.
	UnknownPlayerFactor float64
}

// DefaultRecentFormParams returns the calibrated defaults.
func DefaultRecentFormParams() RecentFormParams {
	return RecentFormParams{
		LeagueAvgPPG:        0.50,
		ElitePPG:            1.50,
		PPGCap:              2.0,
		StreakBonus3:        0.02,
		StreakBonus5:        0.05,
		MinRecentGames:      3,
		UnknownPlayerFactor: 0.5,
	}
}

// GoalieWeaknessParams holds the constants behind the full
// goaltender-weakness calculation used when detailed goaltender data is
// available.
type GoalieWeaknessParams struct {
	LeagueAvgSavePct float64
	LeagueAvgGAA     float64

	// Normalization ranges: elite-to-bad spans
	SavePctRange float64 // e.g. 0.920 elite to 0.880 bad
	GAARange     float64 // e.g. 2.20 elite to 3.60 bad

	// Component weights, sum to 1.0
	SavePctWeight float64
	GAAWeight     float64
	StatusWeight  float64

	// Status component values
	ConfirmedStatus float64
	InferredStatus  float64
}

// DefaultGoalieWeaknessParams returns the calibrated defaults.
func DefaultGoalieWeaknessParams() GoalieWeaknessParams {
	return GoalieWeaknessParams{
		LeagueAvgSavePct: 0.905,
		LeagueAvgGAA:     2.90,
		SavePctRange:     0.040,
		GAARange:         1.40,
		SavePctWeight:    0.50,
		GAAWeight:        0.30,
		StatusWeight:     0.20,
		ConfirmedStatus:  0.5,
		InferredStatus:   0.6,
	}
}

// MatchupParams holds the constants behind the skater-vs-goaltender
// matchup calculator.
type MatchupParams struct {
	// Games faced before SvG history is trusted
	MinConfidentGames int

	// Blend weights when SvG history is confident
	SvGWeight      float64
	WeaknessWeight float64

	// SvG blend weight when history exists but is thin
	LimitedSvGWeight float64

	// PPG benchmark used to normalize SvG pace
	ElitePPG float64
}

// DefaultMatchupParams returns the calibrated defaults.
func DefaultMatchupParams() MatchupParams {
	return MatchupParams{
		MinConfidentGames: 5,
		SvGWeight:         0.60,
		WeaknessWeight:    0.40,
		LimitedSvGWeight:  0.30,
		ElitePPG:          1.50,
	}
}

// SituationalParams holds the schedule-driven adjustment constants.
type SituationalParams struct {
	HomeBonus float64

	B2BPenalty   float64 // played yesterday
	B2B2BPenalty float64 // third game in three nights

	RoadTrip4Penalty float64 // 4+ consecutive away games
	RoadTrip6Penalty float64 // 6+ consecutive away games

	GoalieB2BBoost      float64 // opposing goaltender played yesterday
	RestedGoaliePenalty float64 // opposing goaltender well rested
	RestedGoalieDays    int
}

// DefaultSituationalParams returns the calibrated defaults.
func DefaultSituationalParams() SituationalParams {
	return SituationalParams{
		HomeBonus:           0.03,
		B2BPenalty:          -0.08,
		B2B2BPenalty:        -0.15,
		RoadTrip4Penalty:    -0.05,
		RoadTrip6Penalty:    -0.10,
		GoalieB2BBoost:      0.10,
		RestedGoaliePenalty: -0.05,
		RestedGoalieDays:    3,
	}
}

// Weights is the final-score weight vector, keyed by calculator name on
// a 0-100 scale. The aggregator normalizes to a unit sum. Positions may
// override individual weights; defensemen lean harder on deployment
// and lighter on recent form.
type Weights struct {
	Base              map[string]float64
	PositionOverrides map[string]map[string]float64
}

// DefaultWeights returns the calibrated weight vector.
func DefaultWeights() Weights {
	return Weights{
		Base: map[string]float64{
			NameLineOpportunity: 45,
			NameSituational:     25,
			NameRecentForm:      20,
			NameMatchup:         10,
		},
		PositionOverrides: map[string]map[string]float64{
			"D": {
				NameLineOpportunity: 50,
				NameRecentForm:      15,
			},
		},
	}
}

// WeightsFromConfig builds the weight vector from environment
// configuration, keeping the split injectable for calibration runs.
func WeightsFromConfig(cfg config.WeightsConfig) Weights {
	return Weights{
		Base: map[string]float64{
			NameLineOpportunity: cfg.LineOpportunity,
			NameSituational:     cfg.Situational,
			NameRecentForm:      cfg.RecentForm,
			NameMatchup:         cfg.Matchup,
		},
		PositionOverrides: map[string]map[string]float64{
			"D": {
				NameLineOpportunity: cfg.DefenseLineOpportunity,
				NameRecentForm:      cfg.DefenseRecentForm,
			},
		},
	}
}

// For returns the effective name->weight map for a position.
func (w Weights) For(position string) map[string]float64 {
	merged := make(map[string]float64, len(w.Base))
	for name, weight := range w.Base {
		merged[name] = weight
	}
	if overrides, ok := w.PositionOverrides[position]; ok {
		for name, weight := range overrides {
			merged[name] = weight
		}
	}
	return merged
}
