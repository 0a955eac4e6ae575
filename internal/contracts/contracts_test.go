package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeasonForDate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"october start of season", time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC), "2026"},
		{"december mid season", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "2026"},
		{"january same season", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), "2026"},
		{"april end of season", time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), "2026"},
		{"june playoffs", time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC), "2026"},
		{"september preseason counts toward coming season only in october", time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), "2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeasonForDate(tt.date))
		})
	}
}

func TestDay(t *testing.T) {
	d := Day(time.Date(2025, 11, 29, 19, 30, 12, 999, time.FixedZone("EST", -5*3600)))
	assert.Equal(t, time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC), d)
}

func TestRoleTable_Default(t *testing.T) {
	table := RoleTable{
		97: {LineNumber: 1, PPUnit: 1},
	}

	assert.Equal(t, RoleAssignment{LineNumber: 1, PPUnit: 1}, table.Role(97))

	// Missing players degrade to the weakest tier, never an error.
	assert.Equal(t, RoleAssignment{LineNumber: 4, PPUnit: 0}, table.Role(12345))
}

func TestUnknownGoalie(t *testing.T) {
	g := UnknownGoalie()
	assert.Equal(t, 0.910, g.SavePct)
	assert.Equal(t, 2.80, g.GAA)
	assert.False(t, g.Confirmed)
}

func TestRosterPlayer_FullName(t *testing.T) {
	assert.Equal(t, "Connor McDavid", RosterPlayer{FirstName: "Connor", LastName: "McDavid"}.FullName())
	assert.Equal(t, "McDavid", RosterPlayer{LastName: "McDavid"}.FullName())
}

func TestGameLog_Points(t *testing.T) {
	assert.Equal(t, 3, GameLog{Goals: 1, Assists: 2}.Points())
}
