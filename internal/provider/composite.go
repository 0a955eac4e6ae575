// Package provider assembles the concrete data sources behind the
// DataProvider contract: the NHL API for stats and schedules, the
// DailyFaceoff scraper for published lines, and an optional Redis
// caching layer over both.
package provider

import (
	"context"
	"time"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/internal/provider/dailyfaceoff"
	"github.com/hmelo/puckline/internal/provider/nhl"
)

// Composite joins the NHL API client with the DailyFaceoff scraper.
// The scraper is optional; without it line combinations report
// ErrNotSupported and role inference carries the day.
type Composite struct {
	nhl   *nhl.Client
	lines *dailyfaceoff.Scraper
}

// NewComposite creates a composite provider. lines may be nil.
func NewComposite(nhlClient *nhl.Client, lines *dailyfaceoff.Scraper) *Composite {
	return &Composite{nhl: nhlClient, lines: lines}
}

// GamesByDate delegates to the NHL API
func (c *Composite) GamesByDate(ctx context.Context, date time.Time) ([]contracts.Game, error) {
	return c.nhl.GamesByDate(ctx, date)
}

// TeamRoster delegates to the NHL API
func (c *Composite) TeamRoster(ctx context.Context, team string) ([]contracts.RosterPlayer, error) {
	return c.nhl.TeamRoster(ctx, team)
}

// PlayerSeasonStats delegates to the NHL API
func (c *Composite) PlayerSeasonStats(ctx context.Context, season string) ([]contracts.SeasonStat, error) {
	return c.nhl.PlayerSeasonStats(ctx, season)
}

// PlayerGameLogs delegates to the NHL API
func (c *Composite) PlayerGameLogs(ctx context.Context, playerID int64, season string, limit int) ([]contracts.GameLog, error) {
	return c.nhl.PlayerGameLogs(ctx, playerID, season, limit)
}

// BoxScoresFinal delegates to the NHL API
func (c *Composite) BoxScoresFinal(ctx context.Context, date time.Time) ([]contracts.BoxScore, error) {
	return c.nhl.BoxScoresFinal(ctx, date)
}

// CurrentSeason delegates to the NHL API
func (c *Composite) CurrentSeason(ctx context.Context) (string, error) {
	return c.nhl.CurrentSeason(ctx)
}

// StartingGoaltenders is not served by either source
func (c *Composite) StartingGoaltenders(ctx context.Context, date time.Time) ([]contracts.StartingGoaltender, error) {
	return nil, contracts.ErrNotSupported
}

// LineCombinations scrapes DailyFaceoff when the scraper is wired.
func (c *Composite) LineCombinations(ctx context.Context, team string) (*contracts.TeamLines, error) {
	if c.lines == nil {
		return nil, contracts.ErrNotSupported
	}
	return c.lines.TeamLines(ctx, team)
}
