// Package schedule answers schedule-density questions: back-to-backs,
// three-in-three stretches, road-trip length and rest days. The
// situational calculator consumes it through a narrow interface.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/logger"
)

// Window bounds around the analysis date, in days. Seven days back
// covers the longest road trip that matters; three forward covers
// three-in-three detection.
const (
	windowDaysBack    = 7
	windowDaysForward = 3
)

type teamGame struct {
	date   time.Time
	isHome bool
}

// Analyzer holds one date window of league schedule, indexed by team.
// Build one per analysis date; it is immutable and safe for concurrent
// reads.
type Analyzer struct {
	byTeam map[string][]teamGame
}

// Load fetches the schedule window around date from the provider and
// builds an analyzer over it.
func Load(ctx context.Context, provider contracts.DataProvider, date time.Time, log *logger.Logger) (*Analyzer, error) {
	day := contracts.Day(date)

	var games []contracts.Game
	for offset := -windowDaysBack; offset <= windowDaysForward; offset++ {
		d := day.AddDate(0, 0, offset)
		dayGames, err := provider.GamesByDate(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("failed to load schedule for %s: %w", d.Format("2006-01-02"), err)
		}
		games = append(games, dayGames...)
	}

	if log != nil {
		log.WithFields(map[string]interface{}{
			"date":  day.Format("2006-01-02"),
			"games": len(games),
		}).Debug("Schedule window loaded")
	}

	return NewAnalyzer(games), nil
}

// NewAnalyzer builds an analyzer over a slice of games, deduplicated by
// game id and indexed per team in date order.
func NewAnalyzer(games []contracts.Game) *Analyzer {
	seen := make(map[int64]bool, len(games))
	byTeam := make(map[string][]teamGame)

	for _, g := range games {
		if seen[g.GameID] {
			continue
		}
		seen[g.GameID] = true
		day := contracts.Day(g.GameDate)
		byTeam[g.HomeTeam] = append(byTeam[g.HomeTeam], teamGame{date: day, isHome: true})
		byTeam[g.AwayTeam] = append(byTeam[g.AwayTeam], teamGame{date: day, isHome: false})
	}

	for team := range byTeam {
		sort.Slice(byTeam[team], func(i, j int) bool {
			return byTeam[team][i].date.Before(byTeam[team][j].date)
		})
	}

	return &Analyzer{byTeam: byTeam}
}

// PlayedYesterday reports whether the team played the day before date.
func (a *Analyzer) PlayedYesterday(team string, date time.Time) bool {
	return a.playedOn(team, contracts.Day(date).AddDate(0, 0, -1))
}

// ThreeInThreeNights reports whether date is the team's third game in
// three consecutive nights.
func (a *Analyzer) ThreeInThreeNights(team string, date time.Time) bool {
	day := contracts.Day(date)
	return a.playedOn(team, day.AddDate(0, 0, -1)) && a.playedOn(team, day.AddDate(0, 0, -2))
}

// ConsecutiveAwayGames counts the team's away streak ending at date,
// including the game on date itself when it is on the road. A home game
// or a gap longer than the window stops the count.
func (a *Analyzer) ConsecutiveAwayGames(team string, date time.Time) int {
	games := a.byTeam[team]
	day := contracts.Day(date)

	// Walk backwards from the game on the date
	idx := -1
	for i, g := range games {
		if g.date.Equal(day) {
			idx = i
			break
		}
	}
	if idx == -1 || games[idx].isHome {
		return 0
	}

	streak := 0
	for i := idx; i >= 0; i-- {
		if games[i].isHome {
			break
		}
		streak++
	}
	return streak
}

// DaysSinceLastGame returns full days between the team's previous game
// and date. No earlier game inside the window means at least a week of
// rest, so the window width is returned.
func (a *Analyzer) DaysSinceLastGame(team string, date time.Time) int {
	day := contracts.Day(date)
	last := time.Time{}
	for _, g := range a.byTeam[team] {
		if g.date.Before(day) && g.date.After(last) {
			last = g.date
		}
	}
	if last.IsZero() {
		return windowDaysBack
	}
	return int(day.Sub(last).Hours() / 24)
}

func (a *Analyzer) playedOn(team string, day time.Time) bool {
	for _, g := range a.byTeam[team] {
		if g.date.Equal(day) {
			return true
		}
	}
	return false
}
