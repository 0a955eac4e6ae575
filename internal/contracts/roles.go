package contracts

// RoleAssignment is a player's inferred deployment: even-strength line
// and power-play unit.
type RoleAssignment struct {
	LineNumber int `json:"line_number"`
	PPUnit     int `json:"pp_unit"`
}

// RoleTable maps player id to role assignment for one team on one date.
// It is rebuilt from scratch for every reconstruction date: roster and
// season-to-date production change daily, so caching across dates would
// leak future deployment into past predictions.
type RoleTable map[int64]RoleAssignment

// Role returns the assignment for a player, defaulting to the weakest
// tier (line 4, no PP) when the player is missing.
func (t RoleTable) Role(playerID int64) RoleAssignment {
	if r, ok := t[playerID]; ok {
		return r
	}
	return RoleAssignment{LineNumber: 4, PPUnit: 0}
}

// GoalieInference is the per-team, per-date judgment of the probable
// starting goaltender and their rates. Unconfirmed or unknown starters
// carry the league-average constants.
type GoalieInference struct {
	PlayerID  int64   `json:"player_id"`
	Name      string  `json:"name"`
	SavePct   float64 `json:"save_pct"`
	GAA       float64 `json:"gaa"`
	Starts    int     `json:"starts"`
	Confirmed bool    `json:"confirmed"`
}

// UnknownGoalie returns the league-average placeholder used when a
// team's starter cannot be determined at all.
func UnknownGoalie() GoalieInference {
	return GoalieInference{
		Name:      "Unknown",
		SavePct:   LeagueAverageSavePct,
		GAA:       LeagueAverageGAA,
		Confirmed: false,
	}
}
