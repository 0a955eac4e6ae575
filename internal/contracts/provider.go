package contracts

import (
	"context"
	"errors"
	"time"
)

// ErrNotSupported is returned by optional provider operations that a
// concrete data source does not implement. Callers treat it as "use the
// fallback", never as a failure.
var ErrNotSupported = errors.New("operation not supported by this provider")

// Game statuses as reported by the provider. Historical reconstruction
// accepts completed variants; live generation accepts only Scheduled.
const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "InProgress"
	StatusFinal      = "Final"
	StatusFinalOT    = "F/OT"
	StatusFinalSO    = "F/SO"
)

// Game is one scheduled or completed game.
type Game struct {
	GameID    int64      `json:"game_id"`
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	GameDate  time.Time  `json:"game_date"`
	GameTime  *time.Time `json:"game_time,omitempty"`
	Season    string     `json:"season"`
	Status    string     `json:"status"`
	HomeScore *int       `json:"home_score,omitempty"`
	AwayScore *int       `json:"away_score,omitempty"`
}

// RosterPlayer is one player on a team's active roster.
type RosterPlayer struct {
	PlayerID  int64  `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Status    string `json:"status"` // "Active" players enter the universe
}

// FullName joins first and last name
func (p RosterPlayer) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

// SeasonStat holds one player's season aggregate line. Goaltending
// fields are zero for skaters.
type SeasonStat struct {
	PlayerID         int64   `json:"player_id"`
	Team             string  `json:"team"`
	Position         string  `json:"position"`
	Games            int     `json:"games"`
	Minutes          float64 `json:"minutes"`
	Goals            int     `json:"goals"`
	Assists          int     `json:"assists"`
	Points           int     `json:"points"`
	PowerPlayGoals   int     `json:"pp_goals"`
	PowerPlayAssists int     `json:"pp_assists"`

	Started                 int     `json:"started"`
	GoaltendingSaves        int     `json:"gt_saves"`
	GoaltendingShotsAgainst int     `json:"gt_shots_against"`
	GoaltendingGoalsAgainst int     `json:"gt_goals_against"`
	GoaltendingMinutes      float64 `json:"gt_minutes"`
}

// GameLog is one game line from a player's log.
type GameLog struct {
	Date    time.Time `json:"date"`
	Goals   int       `json:"goals"`
	Assists int       `json:"assists"`
}

// Points returns goals plus assists
func (l GameLog) Points() int {
	return l.Goals + l.Assists
}

// BoxScoreLine is one player's line in a final box score.
type BoxScoreLine struct {
	PlayerID           int64   `json:"player_id"`
	Team               string  `json:"team"`
	Position           string  `json:"position"`
	Goals              int     `json:"goals"`
	Assists            int     `json:"assists"`
	GoaltendingMinutes float64 `json:"gt_minutes"`
}

// BoxScore is a completed game plus its player lines.
type BoxScore struct {
	Game    Game           `json:"game"`
	Players []BoxScoreLine `json:"players"`
}

// StartingGoaltender is a confirmed or projected starter for a game day.
type StartingGoaltender struct {
	PlayerID  int64  `json:"player_id"`
	Name      string `json:"name"`
	Team      string `json:"team"`
	Confirmed bool   `json:"confirmed"`
}

// TeamLines is an authoritative lineup for one team: forward lines,
// defense pairs and power-play units by player id or name.
type TeamLines struct {
	Team         string           `json:"team"`
	CapturedAt   time.Time        `json:"captured_at"`
	Source       string           `json:"source"`
	ForwardLines map[int][]string `json:"forward_lines"` // line -> player names
	DefensePairs map[int][]string `json:"defense_pairs"`
	PowerPlay    map[int][]string `json:"power_play"` // unit -> player names
	Goalies      []string         `json:"goalies"`    // starter first
}

// DataProvider is the read-only boundary to the external stats source.
// The first five operations are mandatory; the rest are optional and
// default to ErrNotSupported (embed UnimplementedProviderExtras).
type DataProvider interface {
	GamesByDate(ctx context.Context, date time.Time) ([]Game, error)
	TeamRoster(ctx context.Context, team string) ([]RosterPlayer, error)
	PlayerSeasonStats(ctx context.Context, season string) ([]SeasonStat, error)
	PlayerGameLogs(ctx context.Context, playerID int64, season string, limit int) ([]GameLog, error)
	BoxScoresFinal(ctx context.Context, date time.Time) ([]BoxScore, error)

	// Optional operations
	CurrentSeason(ctx context.Context) (string, error)
	StartingGoaltenders(ctx context.Context, date time.Time) ([]StartingGoaltender, error)
	LineCombinations(ctx context.Context, team string) (*TeamLines, error)
}

// UnimplementedProviderExtras supplies ErrNotSupported defaults for the
// optional DataProvider operations.
type UnimplementedProviderExtras struct{}

// CurrentSeason is not supported by default
func (UnimplementedProviderExtras) CurrentSeason(context.Context) (string, error) {
	return "", ErrNotSupported
}

// StartingGoaltenders is not supported by default
func (UnimplementedProviderExtras) StartingGoaltenders(context.Context, time.Time) ([]StartingGoaltender, error) {
	return nil, ErrNotSupported
}

// LineCombinations is not supported by default
func (UnimplementedProviderExtras) LineCombinations(context.Context, string) (*TeamLines, error) {
	return nil, ErrNotSupported
}
