package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/logger"
	"github.com/hmelo/puckline/pkg/redis"
)

// Cache TTLs per endpoint. Schedules and box scores move during a game
// day; rosters and stats settle overnight; historical box scores never
// change but share the slate lookup's TTL to keep the policy simple.
const (
	ttlSchedule   = time.Hour
	ttlRoster     = 24 * time.Hour
	ttlSeasonStat = 6 * time.Hour
	ttlGameLog    = 6 * time.Hour
	ttlBoxScores  = time.Hour
	ttlLines      = 6 * time.Hour
)

// Cached wraps a DataProvider with a Redis read-through cache. A cache
// failure is logged and falls through to the upstream call, never
// surfaced to the caller.
type Cached struct {
	upstream contracts.DataProvider
	cache    *redis.Cache
	log      *logger.Logger
}

// NewCached creates the caching layer.
func NewCached(upstream contracts.DataProvider, cache *redis.Cache, log *logger.Logger) *Cached {
	return &Cached{upstream: upstream, cache: cache, log: log}
}

// GamesByDate caches the slate per date
func (c *Cached) GamesByDate(ctx context.Context, date time.Time) ([]contracts.Game, error) {
	key := "schedule:" + date.Format("2006-01-02")
	var games []contracts.Game
	if c.lookup(ctx, key, &games) {
		return games, nil
	}

	games, err := c.upstream.GamesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, games, ttlSchedule)
	return games, nil
}

// TeamRoster caches rosters per team
func (c *Cached) TeamRoster(ctx context.Context, team string) ([]contracts.RosterPlayer, error) {
	key := "roster:" + team
	var roster []contracts.RosterPlayer
	if c.lookup(ctx, key, &roster) {
		return roster, nil
	}

	roster, err := c.upstream.TeamRoster(ctx, team)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, roster, ttlRoster)
	return roster, nil
}

// PlayerSeasonStats caches the league-wide stat pull per season
func (c *Cached) PlayerSeasonStats(ctx context.Context, season string) ([]contracts.SeasonStat, error) {
	key := "season-stats:" + season
	var stats []contracts.SeasonStat
	if c.lookup(ctx, key, &stats) {
		return stats, nil
	}

	stats, err := c.upstream.PlayerSeasonStats(ctx, season)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, stats, ttlSeasonStat)
	return stats, nil
}

// PlayerGameLogs caches logs per player and season
func (c *Cached) PlayerGameLogs(ctx context.Context, playerID int64, season string, limit int) ([]contracts.GameLog, error) {
	key := fmt.Sprintf("game-log:%d:%s:%d", playerID, season, limit)
	var logs []contracts.GameLog
	if c.lookup(ctx, key, &logs) {
		return logs, nil
	}

	logs, err := c.upstream.PlayerGameLogs(ctx, playerID, season, limit)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, logs, ttlGameLog)
	return logs, nil
}

// BoxScoresFinal caches completed box scores per date
func (c *Cached) BoxScoresFinal(ctx context.Context, date time.Time) ([]contracts.BoxScore, error) {
	key := "box-scores:" + date.Format("2006-01-02")
	var boxes []contracts.BoxScore
	if c.lookup(ctx, key, &boxes) {
		return boxes, nil
	}

	boxes, err := c.upstream.BoxScoresFinal(ctx, date)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, key, boxes, ttlBoxScores)
	return boxes, nil
}

// CurrentSeason is cheap upstream and never cached
func (c *Cached) CurrentSeason(ctx context.Context) (string, error) {
	return c.upstream.CurrentSeason(ctx)
}

// StartingGoaltenders passes through uncached; starter news goes stale
// in minutes
func (c *Cached) StartingGoaltenders(ctx context.Context, date time.Time) ([]contracts.StartingGoaltender, error) {
	return c.upstream.StartingGoaltenders(ctx, date)
}

// LineCombinations caches scraped lines per team
func (c *Cached) LineCombinations(ctx context.Context, team string) (*contracts.TeamLines, error) {
	key := "lines:" + team
	var lines contracts.TeamLines
	if c.lookup(ctx, key, &lines) {
		return &lines, nil
	}

	fresh, err := c.upstream.LineCombinations(ctx, team)
	if err != nil {
		return nil, err
	}
	if fresh != nil {
		c.fill(ctx, key, fresh, ttlLines)
	}
	return fresh, nil
}

func (c *Cached) lookup(ctx context.Context, key string, dest interface{}) bool {
	hit, err := c.cache.Get(ctx, key, dest)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Cache read failed, falling through")
		return false
	}
	return hit
}

func (c *Cached) fill(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := c.cache.Set(ctx, key, value, ttl); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}
