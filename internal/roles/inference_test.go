package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/logger"
)

func skater(id int64, pos string) contracts.RosterPlayer {
	return contracts.RosterPlayer{PlayerID: id, Position: pos, Status: "Active"}
}

func skaterStat(id int64, games int, minutes float64, ppG, ppA int) contracts.SeasonStat {
	return contracts.SeasonStat{
		PlayerID: id, Games: games, Minutes: minutes,
		PowerPlayGoals: ppG, PowerPlayAssists: ppA,
	}
}

func TestInferrer_InferRoles_ForwardLines(t *testing.T) {
	inf := NewInferrer(logger.NewNop())

	// Twelve forwards with descending ice time by id: 1..3 should land
	// on line 1, 4..6 on line 2, and so on
	var roster []contracts.RosterPlayer
	stats := make(map[int64]contracts.SeasonStat)
	for id := int64(1); id <= 12; id++ {
		roster = append(roster, skater(id, contracts.PositionCenter))
		stats[id] = skaterStat(id, 10, float64(220-id*10), 0, 0)
	}

	table := inf.InferRoles(roster, stats)
	require.Len(t, table, 12)

	assert.Equal(t, 1, table.Role(1).LineNumber)
	assert.Equal(t, 1, table.Role(3).LineNumber)
	assert.Equal(t, 2, table.Role(4).LineNumber)
	assert.Equal(t, 3, table.Role(9).LineNumber)
	assert.Equal(t, 4, table.Role(12).LineNumber)
}

func TestInferrer_InferRoles_ExtraForwardsStayOnLineFour(t *testing.T) {
	inf := NewInferrer(logger.NewNop())

	var roster []contracts.RosterPlayer
	stats := make(map[int64]contracts.SeasonStat)
	for id := int64(1); id <= 14; id++ {
		roster = append(roster, skater(id, contracts.PositionLeftWing))
		stats[id] = skaterStat(id, 10, float64(200-id*5), 0, 0)
	}

	table := inf.InferRoles(roster, stats)
	assert.Equal(t, 4, table.Role(13).LineNumber)
	assert.Equal(t, 4, table.Role(14).LineNumber)
}

func TestInferrer_InferRoles_DefensePairs(t *testing.T) {
	inf := NewInferrer(logger.NewNop())

	var roster []contracts.RosterPlayer
	stats := make(map[int64]contracts.SeasonStat)
	for id := int64(1); id <= 7; id++ {
		roster = append(roster, skater(id, contracts.PositionDefense))
		stats[id] = skaterStat(id, 10, float64(250-id*10), 0, 0)
	}

	table := inf.InferRoles(roster, stats)
	assert.Equal(t, 1, table.Role(1).LineNumber)
	assert.Equal(t, 1, table.Role(2).LineNumber)
	assert.Equal(t, 2, table.Role(3).LineNumber)
	assert.Equal(t, 3, table.Role(5).LineNumber)
	// Seventh defenseman stays on the third pair
	assert.Equal(t, 3, table.Role(7).LineNumber)
}

func TestInferrer_InferRoles_PowerPlayUnits(t *testing.T) {
	inf := NewInferrer(logger.NewNop())

	var roster []contracts.RosterPlayer
	stats := make(map[int64]contracts.SeasonStat)
	for id := int64(1); id <= 12; id++ {
		roster = append(roster, skater(id, contracts.PositionCenter))
		// Player 1 has the most PP production, descending from there;
		// players 11 and 12 have none
		pp := 0
		if id <= 10 {
			pp = int(12 - id)
		}
		stats[id] = skaterStat(id, 10, 150, pp, 0)
	}

	table := inf.InferRoles(roster, stats)
	assert.Equal(t, 1, table.Role(1).PPUnit)
	assert.Equal(t, 1, table.Role(5).PPUnit)
	assert.Equal(t, 2, table.Role(6).PPUnit)
	assert.Equal(t, 2, table.Role(10).PPUnit)
	assert.Equal(t, 0, table.Role(11).PPUnit)
	assert.Equal(t, 0, table.Role(12).PPUnit)
}

func TestInferrer_InferRoles_PowerPlayUnitsWithoutProduction(t *testing.T) {
	inf := NewInferrer(logger.NewNop())

	// Early season: nobody has a power-play point yet. Units still fill
	// in id order, five on the first unit and five on the second.
	var roster []contracts.RosterPlayer
	stats := make(map[int64]contracts.SeasonStat)
	for id := int64(1); id <= 12; id++ {
		roster = append(roster, skater(id, contracts.PositionCenter))
		stats[id] = skaterStat(id, 2, 30, 0, 0)
	}

	table := inf.InferRoles(roster, stats)
	assert.Equal(t, 1, table.Role(1).PPUnit)
	assert.Equal(t, 1, table.Role(5).PPUnit)
	assert.Equal(t, 2, table.Role(6).PPUnit)
	assert.Equal(t, 2, table.Role(10).PPUnit)
	assert.Equal(t, 0, table.Role(11).PPUnit)
	assert.Equal(t, 0, table.Role(12).PPUnit)
}

func TestInferrer_InferRoles_Deterministic(t *testing.T) {
	inf := NewInferrer(logger.NewNop())

	// Identical ice time and PP production: ties break by player id,
	// regardless of roster order
	rosterA := []contracts.RosterPlayer{
		skater(30, contracts.PositionCenter),
		skater(10, contracts.PositionCenter),
		skater(20, contracts.PositionCenter),
		skater(40, contracts.PositionCenter),
	}
	rosterB := []contracts.RosterPlayer{
		skater(40, contracts.PositionCenter),
		skater(20, contracts.PositionCenter),
		skater(10, contracts.PositionCenter),
		skater(30, contracts.PositionCenter),
	}
	stats := map[int64]contracts.SeasonStat{
		10: skaterStat(10, 10, 150, 2, 2),
		20: skaterStat(20, 10, 150, 2, 2),
		30: skaterStat(30, 10, 150, 2, 2),
		40: skaterStat(40, 10, 150, 2, 2),
	}

	tableA := inf.InferRoles(rosterA, stats)
	tableB := inf.InferRoles(rosterB, stats)
	assert.Equal(t, tableA, tableB)
	assert.Equal(t, 1, tableA.Role(10).LineNumber)
	assert.Equal(t, 2, tableA.Role(40).LineNumber)
}

func TestInferrer_InferRoles_UnknownPlayerDefaults(t *testing.T) {
	table := contracts.RoleTable{}
	role := table.Role(999)
	assert.Equal(t, 4, role.LineNumber)
	assert.Equal(t, 0, role.PPUnit)
}

func TestInferrer_InferGoalie(t *testing.T) {
	inf := NewInferrer(logger.NewNop())

	t.Run("picks the goaltender with the most starts", func(t *testing.T) {
		roster := []contracts.RosterPlayer{
			{PlayerID: 1, FirstName: "Backup", LastName: "Goalie", Position: contracts.PositionGoalie},
			{PlayerID: 2, FirstName: "Starter", LastName: "Goalie", Position: contracts.PositionGoalie},
			skater(3, contracts.PositionCenter),
		}
		stats := map[int64]contracts.SeasonStat{
			1: {PlayerID: 1, Started: 10, GoaltendingSaves: 270, GoaltendingShotsAgainst: 300, GoaltendingGoalsAgainst: 30, GoaltendingMinutes: 600},
			2: {PlayerID: 2, Started: 30, GoaltendingSaves: 930, GoaltendingShotsAgainst: 1000, GoaltendingGoalsAgainst: 70, GoaltendingMinutes: 1800},
		}

		goalie := inf.InferGoalie(roster, stats)
		assert.Equal(t, int64(2), goalie.PlayerID)
		assert.Equal(t, "Starter Goalie", goalie.Name)
		assert.InDelta(t, 0.930, goalie.SavePct, 0.0001)
		assert.InDelta(t, 70.0/1800*60, goalie.GAA, 0.0001)
		assert.False(t, goalie.Confirmed)
	})

	t.Run("zero denominators fall back to league averages", func(t *testing.T) {
		roster := []contracts.RosterPlayer{
			{PlayerID: 5, LastName: "Rookie", Position: contracts.PositionGoalie},
		}
		goalie := inf.InferGoalie(roster, map[int64]contracts.SeasonStat{})
		assert.Equal(t, int64(5), goalie.PlayerID)
		assert.Equal(t, contracts.LeagueAverageSavePct, goalie.SavePct)
		assert.Equal(t, contracts.LeagueAverageGAA, goalie.GAA)
	})

	t.Run("no goaltender on the roster", func(t *testing.T) {
		goalie := inf.InferGoalie([]contracts.RosterPlayer{skater(1, contracts.PositionCenter)}, nil)
		assert.Equal(t, "Unknown", goalie.Name)
		assert.Equal(t, contracts.LeagueAverageSavePct, goalie.SavePct)
	})
}
