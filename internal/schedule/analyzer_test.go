package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/pkg/logger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func game(id int64, date time.Time, home, away string) contracts.Game {
	return contracts.Game{GameID: id, GameDate: date, HomeTeam: home, AwayTeam: away}
}

func TestAnalyzer_PlayedYesterday(t *testing.T) {
	a := NewAnalyzer([]contracts.Game{
		game(1, day(2025, 1, 14), "BOS", "MTL"),
		game(2, day(2025, 1, 15), "BOS", "TOR"),
	})

	assert.True(t, a.PlayedYesterday("BOS", day(2025, 1, 15)))
	assert.True(t, a.PlayedYesterday("MTL", day(2025, 1, 15)))
	assert.False(t, a.PlayedYesterday("TOR", day(2025, 1, 15)))
	assert.False(t, a.PlayedYesterday("BOS", day(2025, 1, 14)))
}

func TestAnalyzer_ThreeInThreeNights(t *testing.T) {
	a := NewAnalyzer([]contracts.Game{
		game(1, day(2025, 1, 13), "BOS", "MTL"),
		game(2, day(2025, 1, 14), "TOR", "BOS"),
		game(3, day(2025, 1, 15), "BOS", "NYR"),
	})

	assert.True(t, a.ThreeInThreeNights("BOS", day(2025, 1, 15)))
	assert.False(t, a.ThreeInThreeNights("MTL", day(2025, 1, 15)))
	// Two in a row is not three in three
	assert.False(t, a.ThreeInThreeNights("BOS", day(2025, 1, 14)))
}

func TestAnalyzer_ConsecutiveAwayGames(t *testing.T) {
	a := NewAnalyzer([]contracts.Game{
		game(1, day(2025, 1, 9), "BOS", "SEA"), // home, streak breaker
		game(2, day(2025, 1, 11), "COL", "BOS"),
		game(3, day(2025, 1, 13), "VGK", "BOS"),
		game(4, day(2025, 1, 15), "LAK", "BOS"),
	})

	assert.Equal(t, 3, a.ConsecutiveAwayGames("BOS", day(2025, 1, 15)))
	assert.Equal(t, 1, a.ConsecutiveAwayGames("BOS", day(2025, 1, 11)))
	// Home game on the date means no away streak
	assert.Equal(t, 0, a.ConsecutiveAwayGames("BOS", day(2025, 1, 9)))
	// No game on the date at all
	assert.Equal(t, 0, a.ConsecutiveAwayGames("BOS", day(2025, 1, 14)))
}

func TestAnalyzer_DaysSinceLastGame(t *testing.T) {
	a := NewAnalyzer([]contracts.Game{
		game(1, day(2025, 1, 11), "BOS", "MTL"),
		game(2, day(2025, 1, 15), "BOS", "TOR"),
	})

	assert.Equal(t, 4, a.DaysSinceLastGame("BOS", day(2025, 1, 15)))
	// No earlier game in the window reads as a full week of rest
	assert.Equal(t, 7, a.DaysSinceLastGame("BOS", day(2025, 1, 11)))
	assert.Equal(t, 7, a.DaysSinceLastGame("CHI", day(2025, 1, 15)))
}

func TestAnalyzer_DaysSinceLastGame_EmptyWindowIsRested(t *testing.T) {
	// Only the analysis-date game exists: the opponent's goaltender has
	// no prior outing in the window and counts as fully rested
	a := NewAnalyzer([]contracts.Game{
		game(1, day(2025, 1, 15), "BOS", "MTL"),
	})

	assert.Equal(t, 7, a.DaysSinceLastGame("MTL", day(2025, 1, 15)))
	assert.Equal(t, 7, a.DaysSinceLastGame("BOS", day(2025, 1, 15)))
}

func TestAnalyzer_DeduplicatesGames(t *testing.T) {
	a := NewAnalyzer([]contracts.Game{
		game(1, day(2025, 1, 14), "BOS", "MTL"),
		game(1, day(2025, 1, 14), "BOS", "MTL"),
	})
	assert.True(t, a.PlayedYesterday("BOS", day(2025, 1, 15)))
	assert.Equal(t, 1, len(a.byTeam["BOS"]))
}

// windowProvider records the dates it was asked for and serves a fixed
// slate per date.
type windowProvider struct {
	contracts.UnimplementedProviderExtras
	requested []time.Time
	games     map[string][]contracts.Game
}

func (p *windowProvider) GamesByDate(_ context.Context, date time.Time) ([]contracts.Game, error) {
	p.requested = append(p.requested, date)
	return p.games[date.Format("2006-01-02")], nil
}

func (p *windowProvider) TeamRoster(context.Context, string) ([]contracts.RosterPlayer, error) {
	return nil, nil
}

func (p *windowProvider) PlayerSeasonStats(context.Context, string) ([]contracts.SeasonStat, error) {
	return nil, nil
}

func (p *windowProvider) PlayerGameLogs(context.Context, int64, string, int) ([]contracts.GameLog, error) {
	return nil, nil
}

func (p *windowProvider) BoxScoresFinal(context.Context, time.Time) ([]contracts.BoxScore, error) {
	return nil, nil
}

func TestLoad_WindowBounds(t *testing.T) {
	provider := &windowProvider{
		games: map[string][]contracts.Game{
			"2025-01-14": {game(1, day(2025, 1, 14), "BOS", "MTL")},
		},
	}

	a, err := Load(context.Background(), provider, day(2025, 1, 15), logger.NewNop())
	require.NoError(t, err)

	// Seven days back through three forward, inclusive
	require.Len(t, provider.requested, 11)
	assert.Equal(t, day(2025, 1, 8), provider.requested[0])
	assert.Equal(t, day(2025, 1, 18), provider.requested[10])

	assert.True(t, a.PlayedYesterday("BOS", day(2025, 1, 15)))
}
