package contracts

import (
	"strconv"
	"time"
)

// Skater positions as reported by the stats provider.
const (
	PositionCenter    = "C"
	PositionLeftWing  = "LW"
	PositionRightWing = "RW"
	PositionDefense   = "D"
	PositionGoalie    = "G"
)

// League-average goaltending rates, used whenever a starter cannot be
// confirmed or a denominator is zero. These exact values are part of the
// scoring contract: changing them breaks parity with historical runs.
const (
	LeagueAverageSavePct = 0.910
	LeagueAverageGAA     = 2.80
)

// RecentWindow holds a player's aggregates over the recent-game window.
// Every quantity is computed only from games strictly before the
// analysis date; Games exceeding the player's pre-cutoff game count is a
// temporal-leakage defect.
type RecentWindow struct {
	Games       int     `json:"games"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	Points      int     `json:"points"`
	PPG         float64 `json:"ppg"`
	PointStreak int     `json:"point_streak"` // consecutive games with at least one point
}

// SeasonAggregate holds season-to-date totals, the fallback when the
// recent window is too thin.
type SeasonAggregate struct {
	Games          int `json:"games"`
	Goals          int `json:"goals"`
	Assists        int `json:"assists"`
	Points         int `json:"points"`
	PowerPlayGoals int `json:"pp_goals"`
}

// VsGoalieRecord is a skater's career history against one goaltender,
// accumulated from final box scores strictly before the analysis date.
type VsGoalieRecord struct {
	GamesFaced int     `json:"games_faced"`
	Goals      int     `json:"goals"`
	Assists    int     `json:"assists"`
	Points     int     `json:"points"`
	PPG        float64 `json:"ppg"`
}

// PlayerGameContext is the unit of work: one skater in one game as seen
// from one analysis date.
type PlayerGameContext struct {
	PlayerID   int64  `json:"player_id"`
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Position   string `json:"position"`

	GameID       int64     `json:"game_id"`
	GameTime     time.Time `json:"game_time"`
	Opponent     string    `json:"opponent"`
	IsHome       bool      `json:"is_home"`
	Season       string    `json:"season"`
	AnalysisDate time.Time `json:"analysis_date"`

	// Role attributes, inferred or scraped
	LineNumber    int     `json:"line_number"` // 1-4, 4 when unknown
	PPUnit        int     `json:"pp_unit"`     // 0 = not on PP, 1 = top unit, 2 = second unit
	AvgTOIMinutes float64 `json:"avg_toi_minutes"`

	// Opposing goaltender
	OpposingGoalie GoalieInference `json:"opposing_goalie"`

	// Goaltender-weakness proxy in [0,1], higher = weaker opposition
	GoalieWeakness float64 `json:"goalie_weakness"`

	// History against tonight's opposing goaltender, nil when none
	VsGoalie *VsGoalieRecord `json:"vs_goalie,omitempty"`

	Recent     RecentWindow    `json:"recent"`
	SeasonStat SeasonAggregate `json:"season_stat"`
}

// IsForward reports whether the position is a forward position
func (c *PlayerGameContext) IsForward() bool {
	return c.Position == PositionCenter || c.Position == PositionLeftWing || c.Position == PositionRightWing
}

// IsDefense reports whether the player is a defenseman
func (c *PlayerGameContext) IsDefense() bool {
	return c.Position == PositionDefense
}

// Day truncates a timestamp to a UTC calendar date. All analysis dates
// and game dates are compared at day granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SeasonForDate derives the season label for a date. NHL seasons span
// two calendar years; games from October onward belong to the season
// labeled with the following year (Oct 2025 is season "2026").
func SeasonForDate(d time.Time) string {
	year := d.Year()
	if d.Month() >= time.October {
		year++
	}
	return strconv.Itoa(year)
}
