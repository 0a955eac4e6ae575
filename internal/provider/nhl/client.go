// Package nhl implements the data provider against the NHL's public
// api-web endpoint set.
package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/config"
	"github.com/hmelo/puckline/pkg/httputil"
	"github.com/hmelo/puckline/pkg/logger"
)

// Client talks to the NHL API. It implements contracts.DataProvider.
type Client struct {
	contracts.UnimplementedProviderExtras

	baseURL string
	http    *httputil.Client
	log     *logger.Logger
}

// New creates an NHL API client with retry and rate limiting from
// configuration.
func New(cfg *config.Config, log *logger.Logger) *Client {
	httpClient := httputil.New(log, cfg.NHL.Timeout).
		WithRateLimit(cfg.NHL.RequestsPerSec, 2)

	return &Client{
		baseURL: cfg.NHL.BaseURL,
		http:    httpClient,
		log:     log,
	}
}

// GamesByDate returns the slate for a date.
func (c *Client) GamesByDate(ctx context.Context, date time.Time) ([]contracts.Game, error) {
	var payload scoreResponse
	url := fmt.Sprintf("%s/score/%s", c.baseURL, date.Format("2006-01-02"))
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch slate: %w", err)
	}

	games := make([]contracts.Game, 0, len(payload.Games))
	for _, g := range payload.Games {
		game := contracts.Game{
			GameID:   g.ID,
			HomeTeam: g.HomeTeam.Abbrev,
			AwayTeam: g.AwayTeam.Abbrev,
			Season:   seasonLabel(g.Season),
			Status:   mapGameState(g.GameState, g.GameOutcome.LastPeriodType),
		}
		if t, err := time.Parse("2006-01-02", g.GameDate); err == nil {
			game.GameDate = t
		}
		if t, err := time.Parse(time.RFC3339, g.StartTimeUTC); err == nil {
			start := t
			game.GameTime = &start
		}
		if g.GameState != "FUT" && g.GameState != "PRE" {
			home, away := g.HomeTeam.Score, g.AwayTeam.Score
			game.HomeScore = &home
			game.AwayScore = &away
		}
		games = append(games, game)
	}

	return games, nil
}

// TeamRoster returns a team's current roster. The NHL roster endpoint
// only lists dressed players, so everyone returned is active.
func (c *Client) TeamRoster(ctx context.Context, team string) ([]contracts.RosterPlayer, error) {
	var payload rosterResponse
	url := fmt.Sprintf("%s/roster/%s/current", c.baseURL, team)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch roster for %s: %w", team, err)
	}

	var roster []contracts.RosterPlayer
	for _, group := range [][]rosterEntry{payload.Forwards, payload.Defensemen, payload.Goalies} {
		for _, p := range group {
			roster = append(roster, contracts.RosterPlayer{
				PlayerID:  p.ID,
				FirstName: p.FirstName.Default,
				LastName:  p.LastName.Default,
				Position:  p.PositionCode,
				Status:    "Active",
			})
		}
	}

	return roster, nil
}

// PlayerSeasonStats aggregates club stats across every team in the
// league. The season parameter is accepted for interface symmetry; the
// club-stats endpoint always reports the current season.
func (c *Client) PlayerSeasonStats(ctx context.Context, season string) ([]contracts.SeasonStat, error) {
	teams, err := c.teamAbbrevs(ctx)
	if err != nil {
		return nil, err
	}

	var stats []contracts.SeasonStat
	for _, team := range teams {
		teamStats, err := c.teamSeasonStats(ctx, team)
		if err != nil {
			return nil, err
		}
		stats = append(stats, teamStats...)
	}

	c.log.WithFields(map[string]interface{}{
		"season":  season,
		"teams":   len(teams),
		"players": len(stats),
	}).Debug("Season stats loaded")

	return stats, nil
}

// PlayerGameLogs returns a player's regular-season game log, newest
// first, capped at limit entries.
func (c *Client) PlayerGameLogs(ctx context.Context, playerID int64, season string, limit int) ([]contracts.GameLog, error) {
	var payload gameLogResponse
	url := fmt.Sprintf("%s/player/%d/game-log/%s/2", c.baseURL, playerID, seasonParam(season))
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch game log for player %d: %w", playerID, err)
	}

	logs := make([]contracts.GameLog, 0, limit)
	for _, entry := range payload.GameLog {
		if limit > 0 && len(logs) >= limit {
			break
		}
		date, err := time.Parse("2006-01-02", entry.GameDate)
		if err != nil {
			continue
		}
		logs = append(logs, contracts.GameLog{
			Date:    date,
			Goals:   entry.Goals,
			Assists: entry.Assists,
		})
	}

	return logs, nil
}

// BoxScoresFinal returns full box scores for every completed game on a
// date.
func (c *Client) BoxScoresFinal(ctx context.Context, date time.Time) ([]contracts.BoxScore, error) {
	games, err := c.GamesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	var boxes []contracts.BoxScore
	for _, g := range games {
		switch g.Status {
		case contracts.StatusFinal, contracts.StatusFinalOT, contracts.StatusFinalSO:
		default:
			continue
		}

		box, err := c.boxScore(ctx, g)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, *box)
	}

	return boxes, nil
}

// CurrentSeason derives the season label from the server's view of
// today.
func (c *Client) CurrentSeason(ctx context.Context) (string, error) {
	return contracts.SeasonForDate(time.Now().UTC()), nil
}

func (c *Client) boxScore(ctx context.Context, game contracts.Game) (*contracts.BoxScore, error) {
	var payload boxScoreResponse
	url := fmt.Sprintf("%s/gamecenter/%d/boxscore", c.baseURL, game.GameID)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch box score for game %d: %w", game.GameID, err)
	}

	box := &contracts.BoxScore{Game: game}
	sides := []struct {
		team  string
		stats teamPlayerStats
	}{
		{game.AwayTeam, payload.PlayerByGameStats.AwayTeam},
		{game.HomeTeam, payload.PlayerByGameStats.HomeTeam},
	}

	for _, side := range sides {
		for _, p := range side.stats.Forwards {
			box.Players = append(box.Players, skaterLine(p, side.team))
		}
		for _, p := range side.stats.Defense {
			box.Players = append(box.Players, skaterLine(p, side.team))
		}
		for _, p := range side.stats.Goalies {
			box.Players = append(box.Players, contracts.BoxScoreLine{
				PlayerID:           p.PlayerID,
				Team:               side.team,
				Position:           contracts.PositionGoalie,
				GoaltendingMinutes: parseTOI(p.TOI),
			})
		}
	}

	return box, nil
}

// teamAbbrevs lists every team from the standings.
func (c *Client) teamAbbrevs(ctx context.Context) ([]string, error) {
	var payload standingsResponse
	if err := c.getJSON(ctx, c.baseURL+"/standings/now", &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch standings: %w", err)
	}

	teams := make([]string, 0, len(payload.Standings))
	for _, s := range payload.Standings {
		teams = append(teams, s.TeamAbbrev.Default)
	}
	return teams, nil
}

func (c *Client) teamSeasonStats(ctx context.Context, team string) ([]contracts.SeasonStat, error) {
	var payload clubStatsResponse
	url := fmt.Sprintf("%s/club-stats/%s/now", c.baseURL, team)
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch club stats for %s: %w", team, err)
	}

	stats := make([]contracts.SeasonStat, 0, len(payload.Skaters)+len(payload.Goalies))
	for _, s := range payload.Skaters {
		stats = append(stats, contracts.SeasonStat{
			PlayerID:         s.PlayerID,
			Team:             team,
			Position:         s.PositionCode,
			Games:            s.GamesPlayed,
			Minutes:          s.AvgTimeOnIcePerGame / 60 * float64(s.GamesPlayed),
			Goals:            s.Goals,
			Assists:          s.Assists,
			Points:           s.Points,
			PowerPlayGoals:   s.PowerPlayGoals,
			PowerPlayAssists: s.PowerPlayPoints - s.PowerPlayGoals,
		})
	}
	for _, g := range payload.Goalies {
		stat := contracts.SeasonStat{
			PlayerID:                g.PlayerID,
			Team:                    team,
			Position:                contracts.PositionGoalie,
			Games:                   g.GamesPlayed,
			Started:                 g.GamesStarted,
			GoaltendingSaves:        g.Saves,
			GoaltendingShotsAgainst: g.ShotsAgainst,
			GoaltendingGoalsAgainst: g.GoalsAgainst,
		}
		// The endpoint reports GAA but not minutes; back minutes out
		// so downstream rate math has a denominator
		if g.GoalsAgainstAverage > 0 {
			stat.GoaltendingMinutes = float64(g.GoalsAgainst) / g.GoalsAgainstAverage * 60
		}
		stats = append(stats, stat)
	}

	return stats, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest interface{}) error {
	resp, err := c.http.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

func skaterLine(p playerGameStats, team string) contracts.BoxScoreLine {
	return contracts.BoxScoreLine{
		PlayerID: p.PlayerID,
		Team:     team,
		Position: p.Position,
		Goals:    p.Goals,
		Assists:  p.Assists,
	}
}

// mapGameState converts the NHL API's game states to provider statuses.
func mapGameState(state, lastPeriodType string) string {
	switch state {
	case "FUT", "PRE":
		return contracts.StatusScheduled
	case "LIVE", "CRIT":
		return contracts.StatusInProgress
	case "FINAL", "OFF":
		switch lastPeriodType {
		case "OT":
			return contracts.StatusFinalOT
		case "SO":
			return contracts.StatusFinalSO
		default:
			return contracts.StatusFinal
		}
	default:
		return state
	}
}

// seasonLabel converts the API's eight-digit season id (20242025) to
// the closing-year label ("2025").
func seasonLabel(seasonID int64) string {
	if seasonID == 0 {
		return ""
	}
	return fmt.Sprintf("%d", seasonID%10000)
}

// seasonParam converts a closing-year label to the API's eight-digit
// season id.
func seasonParam(season string) string {
	var year int
	if _, err := fmt.Sscanf(season, "%d", &year); err != nil || year == 0 {
		return "now"
	}
	return fmt.Sprintf("%d%d", year-1, year)
}

// parseTOI converts "mm:ss" ice time to minutes.
func parseTOI(toi string) float64 {
	var minutes, seconds int
	if _, err := fmt.Sscanf(toi, "%d:%d", &minutes, &seconds); err != nil {
		return 0
	}
	return float64(minutes) + float64(seconds)/60
}
