// Package roles rebuilds team deployment from aggregate statistics:
// even-strength lines from ice time, power-play units from power-play
// production, and the probable starting goaltender from starts.
//
// Inference works entirely from season-to-date aggregates, so a
// historical run on an old date reconstructs the deployment a bettor
// could have known that morning.
package roles

import (
	"sort"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/logger"
)

// Forwards per even-strength line and defensemen per pair.
const (
	forwardsPerLine   = 3
	defensemenPerPair = 2

	maxForwardLines = 4
	maxDefensePairs = 3

	ppUnitSize = 5
)

// Inferrer derives role tables and goaltender judgments for one team
// from its roster and the league's season stats.
type Inferrer struct {
	log *logger.Logger
}

// NewInferrer creates an inferrer.
func NewInferrer(log *logger.Logger) *Inferrer {
	return &Inferrer{log: log}
}

type rankedPlayer struct {
	playerID int64
	avgTOI   float64
	ppPoints int
}

// InferRoles builds the role table for a team: forwards are ranked by
// average ice time into lines of three, defensemen into pairs of two,
// and power-play units are filled from power-play production. Players
// beyond the last line or pair stay on it rather than dropping off the
// table.
func (inf *Inferrer) InferRoles(roster []contracts.RosterPlayer, stats map[int64]contracts.SeasonStat) contracts.RoleTable {
	var forwards, defensemen []rankedPlayer
	var skaters []rankedPlayer

	for _, p := range sortedRoster(roster) {
		if p.Position == contracts.PositionGoalie {
			continue
		}
		st := stats[p.PlayerID]
		rp := rankedPlayer{
			playerID: p.PlayerID,
			avgTOI:   avgTOI(st),
			ppPoints: st.PowerPlayGoals + st.PowerPlayAssists,
		}
		if p.Position == contracts.PositionDefense {
			defensemen = append(defensemen, rp)
		} else {
			forwards = append(forwards, rp)
		}
		skaters = append(skaters, rp)
	}

	table := make(contracts.RoleTable, len(skaters))

	sortByTOI(forwards)
	for i, p := range forwards {
		line := i/forwardsPerLine + 1
		if line > maxForwardLines {
			line = maxForwardLines
		}
		table[p.playerID] = contracts.RoleAssignment{LineNumber: line}
	}

	sortByTOI(defensemen)
	for i, p := range defensemen {
		pair := i/defensemenPerPair + 1
		if pair > maxDefensePairs {
			pair = maxDefensePairs
		}
		table[p.playerID] = contracts.RoleAssignment{LineNumber: pair}
	}

	// PP units cut across positions: the ten best power-play producers
	// fill two units of five, even when nobody has produced yet. Ties
	// fall back to roster id order from the pre-sort.
	sortByPPPoints(skaters)
	for i, p := range skaters {
		if i >= 2*ppUnitSize {
			break
		}
		unit := 1
		if i >= ppUnitSize {
			unit = 2
		}
		role := table[p.playerID]
		role.PPUnit = unit
		table[p.playerID] = role
	}

	return table
}

// InferGoalie picks the probable starter for a team: the goaltender
// with the most starts, with league-average rates plugged in wherever a
// denominator is zero. The result is never confirmed; confirmation
// comes only from an authoritative starter feed.
func (inf *Inferrer) InferGoalie(roster []contracts.RosterPlayer, stats map[int64]contracts.SeasonStat) contracts.GoalieInference {
	var best *contracts.RosterPlayer
	var bestStat contracts.SeasonStat

	for _, p := range sortedRoster(roster) {
		if p.Position != contracts.PositionGoalie {
			continue
		}
		st := stats[p.PlayerID]
		if best == nil || st.Started > bestStat.Started {
			cp := p
			best = &cp
			bestStat = st
		}
	}

	if best == nil {
		if inf.log != nil {
			inf.log.Debug("no goaltender on roster, using league average placeholder")
		}
		return contracts.UnknownGoalie()
	}

	savePct := contracts.LeagueAverageSavePct
	if bestStat.GoaltendingShotsAgainst > 0 {
		savePct = float64(bestStat.GoaltendingSaves) / float64(bestStat.GoaltendingShotsAgainst)
	}

	gaa := contracts.LeagueAverageGAA
	if bestStat.GoaltendingMinutes > 0 {
		gaa = float64(bestStat.GoaltendingGoalsAgainst) / bestStat.GoaltendingMinutes * 60
	}

	return contracts.GoalieInference{
		PlayerID:  best.PlayerID,
		Name:      best.FullName(),
		SavePct:   savePct,
		GAA:       gaa,
		Starts:    bestStat.Started,
		Confirmed: false,
	}
}

// sortedRoster returns the roster ordered by player id so every
// downstream stable sort breaks ties identically run to run.
func sortedRoster(roster []contracts.RosterPlayer) []contracts.RosterPlayer {
	out := make([]contracts.RosterPlayer, len(roster))
	copy(out, roster)
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}

func sortByTOI(players []rankedPlayer) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].avgTOI > players[j].avgTOI
	})
}

func sortByPPPoints(players []rankedPlayer) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ppPoints > players[j].ppPoints
	})
}

// avgTOI is minutes per game played, zero when the player has not
// appeared.
func avgTOI(st contracts.SeasonStat) float64 {
	if st.Games == 0 {
		return 0
	}
	return st.Minutes / float64(st.Games)
}

// AvgTOI exposes the per-game ice time used for ranking, for context
// builders that need the same figure.
func AvgTOI(st contracts.SeasonStat) float64 {
	return avgTOI(st)
}
