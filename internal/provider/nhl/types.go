package nhl

// Wire types for the api-web.nhle.com payloads, trimmed to the fields
// the provider reads.

type localizedName struct {
	Default string `json:"default"`
}

type scoreResponse struct {
	Games []scoreGame `json:"games"`
}

type scoreGame struct {
	ID           int64     `json:"id"`
	Season       int64     `json:"season"`
	GameDate     string    `json:"gameDate"`
	StartTimeUTC string    `json:"startTimeUTC"`
	GameState    string    `json:"gameState"`
	HomeTeam     scoreTeam `json:"homeTeam"`
	AwayTeam     scoreTeam `json:"awayTeam"`
	GameOutcome  struct {
		LastPeriodType string `json:"lastPeriodType"`
	} `json:"gameOutcome"`
}

type scoreTeam struct {
	Abbrev string `json:"abbrev"`
	Score  int    `json:"score"`
}

type rosterResponse struct {
	Forwards   []rosterEntry `json:"forwards"`
	Defensemen []rosterEntry `json:"defensemen"`
	Goalies    []rosterEntry `json:"goalies"`
}

type rosterEntry struct {
	ID           int64         `json:"id"`
	FirstName    localizedName `json:"firstName"`
	LastName     localizedName `json:"lastName"`
	PositionCode string        `json:"positionCode"`
}

type standingsResponse struct {
	Standings []struct {
		TeamAbbrev localizedName `json:"teamAbbrev"`
	} `json:"standings"`
}

type clubStatsResponse struct {
	Skaters []clubSkater `json:"skaters"`
	Goalies []clubGoalie `json:"goalies"`
}

type clubSkater struct {
	PlayerID            int64   `json:"playerId"`
	PositionCode        string  `json:"positionCode"`
	GamesPlayed         int     `json:"gamesPlayed"`
	Goals               int     `json:"goals"`
	Assists             int     `json:"assists"`
	Points              int     `json:"points"`
	PowerPlayGoals      int     `json:"powerPlayGoals"`
	PowerPlayPoints     int     `json:"powerPlayPoints"`
	AvgTimeOnIcePerGame float64 `json:"avgTimeOnIcePerGame"` // seconds
}

type clubGoalie struct {
	PlayerID            int64   `json:"playerId"`
	GamesPlayed         int     `json:"gamesPlayed"`
	GamesStarted        int     `json:"gamesStarted"`
	Saves               int     `json:"saves"`
	ShotsAgainst        int     `json:"shotsAgainst"`
	GoalsAgainst        int     `json:"goalsAgainst"`
	GoalsAgainstAverage float64 `json:"goalsAgainstAverage"`
}

type gameLogResponse struct {
	GameLog []gameLogEntry `json:"gameLog"`
}

type gameLogEntry struct {
	GameDate string `json:"gameDate"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
}

type boxScoreResponse struct {
	PlayerByGameStats struct {
		AwayTeam teamPlayerStats `json:"awayTeam"`
		HomeTeam teamPlayerStats `json:"homeTeam"`
	} `json:"playerByGameStats"`
}

type teamPlayerStats struct {
	Forwards []playerGameStats `json:"forwards"`
	Defense  []playerGameStats `json:"defense"`
	Goalies  []playerGameStats `json:"goalies"`
}

type playerGameStats struct {
	PlayerID int64  `json:"playerId"`
	Position string `json:"position"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
	TOI      string `json:"toi"`
}
