package enrich

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hmelo/puckline/internal/contracts"
)

// Games in the recent-form window, and the log fetch size that leaves
// room for post-cutoff games to be discarded.
const (
	recentWindowGames = 10
	gameLogFetchLimit = 25
)

// EnrichRecentForm fills each context's recent window from the player's
// game log. Only games strictly before the analysis date count; a game
// played on the analysis date itself is the game being predicted.
func (b *Builder) EnrichRecentForm(ctx context.Context, universe []contracts.PlayerGameContext) ([]contracts.PlayerGameContext, error) {
	logCache := make(map[int64][]contracts.GameLog)

	for i := range universe {
		pgc := &universe[i]

		logs, ok := logCache[pgc.PlayerID]
		if !ok {
			var err error
			logs, err = b.provider.PlayerGameLogs(ctx, pgc.PlayerID, pgc.Season, gameLogFetchLimit)
			if err != nil {
				return nil, fmt.Errorf("failed to load game logs for player %d: %w", pgc.PlayerID, err)
			}
			logCache[pgc.PlayerID] = logs
		}

		pgc.Recent = buildWindow(logs, pgc.AnalysisDate)
	}

	return universe, nil
}

// buildWindow computes the recent window from a game log, keeping only
// games strictly before the cutoff day.
func buildWindow(logs []contracts.GameLog, cutoff time.Time) contracts.RecentWindow {
	day := contracts.Day(cutoff)

	eligible := make([]contracts.GameLog, 0, len(logs))
	for _, l := range logs {
		if contracts.Day(l.Date).Before(day) {
			eligible = append(eligible, l)
		}
	}

	// Newest first
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].Date.After(eligible[j].Date)
	})

	if len(eligible) > recentWindowGames {
		eligible = eligible[:recentWindowGames]
	}

	var window contracts.RecentWindow
	window.Games = len(eligible)
	for _, l := range eligible {
		window.Goals += l.Goals
		window.Assists += l.Assists
		window.Points += l.Points()
	}
	if window.Games > 0 {
		window.PPG = float64(window.Points) / float64(window.Games)
	}

	// Streak counts consecutive point games from the most recent back
	for _, l := range eligible {
		if l.Points() == 0 {
			break
		}
		window.PointStreak++
	}

	return window
}
