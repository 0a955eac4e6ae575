// Package svg accumulates skater-vs-goaltender history from final box
// scores. Production against a goaltender is only attributable when
// that goaltender played the whole game, so games where a team used two
// goaltenders are skipped rather than guessed at.
package svg

import (
	"context"
	"fmt"
	"time"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/logger"
)

// Default lookback when building history for an analysis date. Long
// enough to catch every divisional rematch of the season to date.
const DefaultLookbackDays = 180

type matchupKey struct {
	skaterID int64
	goalieID int64
}

// History is an index of skater production against individual
// goaltenders. Build once per analysis date from pre-cutoff box scores;
// reads are safe concurrently after building.
type History struct {
	records map[matchupKey]*contracts.VsGoalieRecord
	games   int
	skipped int
}

// NewHistory creates an empty index.
func NewHistory() *History {
	return &History{records: make(map[matchupKey]*contracts.VsGoalieRecord)}
}

// Build loads final box scores for every day in [from, to) and folds
// them into a history index. The upper bound is exclusive so an
// analysis date never sees its own games.
func Build(ctx context.Context, provider contracts.DataProvider, from, to time.Time, log *logger.Logger) (*History, error) {
	h := NewHistory()

	for d := contracts.Day(from); d.Before(contracts.Day(to)); d = d.AddDate(0, 0, 1) {
		boxes, err := provider.BoxScoresFinal(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("failed to load box scores for %s: %w", d.Format("2006-01-02"), err)
		}
		for i := range boxes {
			h.Add(&boxes[i])
		}
	}

	if log != nil {
		log.WithFields(map[string]interface{}{
			"games":    h.games,
			"skipped":  h.skipped,
			"matchups": len(h.records),
		}).Debug("Skater-vs-goalie history built")
	}

	return h, nil
}

// Add folds one final box score into the index. Games without exactly
// one goaltender per side contribute nothing.
func (h *History) Add(box *contracts.BoxScore) {
	goalies := make(map[string][]contracts.BoxScoreLine)
	for _, line := range box.Players {
		if line.GoaltendingMinutes > 0 {
			goalies[line.Team] = append(goalies[line.Team], line)
		}
	}

	homeGoalie, homeOK := singleGoalie(goalies[box.Game.HomeTeam])
	awayGoalie, awayOK := singleGoalie(goalies[box.Game.AwayTeam])
	if !homeOK || !awayOK {
		h.skipped++
		return
	}
	h.games++

	for _, line := range box.Players {
		if line.GoaltendingMinutes > 0 {
			continue
		}
		// Skaters face the other team's goaltender
		goalieID := homeGoalie.PlayerID
		if line.Team == box.Game.HomeTeam {
			goalieID = awayGoalie.PlayerID
		}
		h.record(line.PlayerID, goalieID, line.Goals, line.Assists)
	}
}

// Record returns the accumulated history for a skater against a
// goaltender, or nil when they have never met.
func (h *History) Record(skaterID, goalieID int64) *contracts.VsGoalieRecord {
	rec, ok := h.records[matchupKey{skaterID, goalieID}]
	if !ok {
		return nil
	}
	out := *rec
	return &out
}

// Matchups returns the number of distinct skater-goaltender pairs in
// the index.
func (h *History) Matchups() int {
	return len(h.records)
}

func (h *History) record(skaterID, goalieID int64, goals, assists int) {
	key := matchupKey{skaterID, goalieID}
	rec, ok := h.records[key]
	if !ok {
		rec = &contracts.VsGoalieRecord{}
		h.records[key] = rec
	}
	rec.GamesFaced++
	rec.Goals += goals
	rec.Assists += assists
	rec.Points += goals + assists
	rec.PPG = float64(rec.Points) / float64(rec.GamesFaced)
}

func singleGoalie(lines []contracts.BoxScoreLine) (contracts.BoxScoreLine, bool) {
	if len(lines) != 1 {
		return contracts.BoxScoreLine{}, false
	}
	return lines[0], true
}
