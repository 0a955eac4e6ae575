// Package enrich builds the analysis universe: every active skater on
// every slated team, with roles, opposing goaltender, matchup history
// and recent form attached. Everything is derived from data available
// strictly before the analysis date.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hmelo/puckline/internal/contracts"
	"github.com/hmelo/puckline/internal/roles"
	"github.com/hmelo/puckline/internal/scoring"
	"github.com/hmelo/puckline/internal/svg"
	"github.com/hmelo/puckline/pkg/logger"
)

// Builder assembles player-game contexts for one analysis date.
type Builder struct {
	provider contracts.DataProvider
	inferrer *roles.Inferrer
	log      *logger.Logger
}

// NewBuilder creates a universe builder.
func NewBuilder(provider contracts.DataProvider, inferrer *roles.Inferrer, log *logger.Logger) *Builder {
	return &Builder{provider: provider, inferrer: inferrer, log: log}
}

// BuildUniverse expands a slate of games into one context per active
// skater. Roles come from aggregate inference, overridden by scraped
// line combinations when the provider has them; opposing goaltenders
// come from starts inference, overridden by a confirmed starter feed.
func (b *Builder) BuildUniverse(ctx context.Context, games []contracts.Game, date time.Time, history *svg.History) ([]contracts.PlayerGameContext, error) {
	day := contracts.Day(date)
	season := contracts.SeasonForDate(day)

	stats, err := b.seasonStatsByPlayer(ctx, season)
	if err != nil {
		return nil, err
	}

	starters := b.confirmedStarters(ctx, day)

	var universe []contracts.PlayerGameContext
	for _, g := range games {
		sides := []struct {
			team, opponent string
			isHome         bool
		}{
			{g.HomeTeam, g.AwayTeam, true},
			{g.AwayTeam, g.HomeTeam, false},
		}

		for _, side := range sides {
			contexts, err := b.buildTeam(ctx, g, side.team, side.opponent, side.isHome, day, season, stats, starters, history)
			if err != nil {
				return nil, err
			}
			universe = append(universe, contexts...)
		}
	}

	// Deterministic output order regardless of provider ordering
	sort.Slice(universe, func(i, j int) bool {
		if universe[i].GameID != universe[j].GameID {
			return universe[i].GameID < universe[j].GameID
		}
		return universe[i].PlayerID < universe[j].PlayerID
	})

	b.log.WithFields(map[string]interface{}{
		"date":    day.Format("2006-01-02"),
		"games":   len(games),
		"players": len(universe),
	}).Info("Universe built")

	return universe, nil
}

func (b *Builder) buildTeam(
	ctx context.Context,
	g contracts.Game,
	team, opponent string,
	isHome bool,
	day time.Time,
	season string,
	stats map[int64]contracts.SeasonStat,
	starters map[string]contracts.StartingGoaltender,
	history *svg.History,
) ([]contracts.PlayerGameContext, error) {
	roster, err := b.provider.TeamRoster(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for %s: %w", team, err)
	}

	oppRoster, err := b.provider.TeamRoster(ctx, opponent)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for %s: %w", opponent, err)
	}

	table := b.inferrer.InferRoles(roster, stats)
	b.applyLineOverrides(ctx, team, roster, table)

	goalie := b.resolveGoalie(opponent, oppRoster, stats, starters)
	weakness := scoring.Proxy(goalie.SavePct, goalie.GAA)

	gameTime := g.GameDate
	if g.GameTime != nil {
		gameTime = *g.GameTime
	}

	var contexts []contracts.PlayerGameContext
	for _, p := range roster {
		if p.Position == contracts.PositionGoalie || p.Status != "Active" {
			continue
		}
		st := stats[p.PlayerID]
		role := table.Role(p.PlayerID)

		pgc := contracts.PlayerGameContext{
			PlayerID:       p.PlayerID,
			PlayerName:     p.FullName(),
			Team:           team,
			Position:       p.Position,
			GameID:         g.GameID,
			GameTime:       gameTime,
			Opponent:       opponent,
			IsHome:         isHome,
			Season:         season,
			AnalysisDate:   day,
			LineNumber:     role.LineNumber,
			PPUnit:         role.PPUnit,
			AvgTOIMinutes:  roles.AvgTOI(st),
			OpposingGoalie: goalie,
			GoalieWeakness: weakness,
			SeasonStat: contracts.SeasonAggregate{
				Games:          st.Games,
				Goals:          st.Goals,
				Assists:        st.Assists,
				Points:         st.Points,
				PowerPlayGoals: st.PowerPlayGoals,
			},
		}
		if history != nil && goalie.PlayerID != 0 {
			pgc.VsGoalie = history.Record(p.PlayerID, goalie.PlayerID)
		}
		contexts = append(contexts, pgc)
	}

	return contexts, nil
}

// resolveGoalie prefers a confirmed starter from the feed, falling back
// to starts-based inference over the opponent's roster.
func (b *Builder) resolveGoalie(
	opponent string,
	oppRoster []contracts.RosterPlayer,
	stats map[int64]contracts.SeasonStat,
	starters map[string]contracts.StartingGoaltender,
) contracts.GoalieInference {
	inferred := b.inferrer.InferGoalie(oppRoster, stats)

	starter, ok := starters[opponent]
	if !ok {
		return inferred
	}

	goalie := contracts.GoalieInference{
		PlayerID:  starter.PlayerID,
		Name:      starter.Name,
		SavePct:   contracts.LeagueAverageSavePct,
		GAA:       contracts.LeagueAverageGAA,
		Confirmed: starter.Confirmed,
	}
	if st, ok := stats[starter.PlayerID]; ok {
		if st.GoaltendingShotsAgainst > 0 {
			goalie.SavePct = float64(st.GoaltendingSaves) / float64(st.GoaltendingShotsAgainst)
		}
		if st.GoaltendingMinutes > 0 {
			goalie.GAA = float64(st.GoaltendingGoalsAgainst) / st.GoaltendingMinutes * 60
		}
		goalie.Starts = st.Started
	} else if starter.PlayerID == inferred.PlayerID {
		goalie.SavePct = inferred.SavePct
		goalie.GAA = inferred.GAA
		goalie.Starts = inferred.Starts
	}
	return goalie
}

// applyLineOverrides replaces inferred roles with scraped line
// combinations when the provider carries them. Names that cannot be
// matched to the roster keep their inferred role.
func (b *Builder) applyLineOverrides(ctx context.Context, team string, roster []contracts.RosterPlayer, table contracts.RoleTable) {
	lines, err := b.provider.LineCombinations(ctx, team)
	if err != nil {
		if !errors.Is(err, contracts.ErrNotSupported) {
			b.log.WithError(err).WithField("team", team).Warn("Line combination lookup failed, keeping inferred roles")
		}
		return
	}
	if lines == nil {
		return
	}

	byName := make(map[string]int64, len(roster))
	for _, p := range roster {
		byName[normalizeName(p.FullName())] = p.PlayerID
	}

	apply := func(groups map[int][]string, setLine bool) {
		for number, names := range groups {
			for _, name := range names {
				id, ok := byName[normalizeName(name)]
				if !ok {
					continue
				}
				role := table.Role(id)
				if setLine {
					role.LineNumber = number
				} else {
					role.PPUnit = number
				}
				table[id] = role
			}
		}
	}

	apply(lines.ForwardLines, true)
	apply(lines.DefensePairs, true)
	apply(lines.PowerPlay, false)
}

func (b *Builder) seasonStatsByPlayer(ctx context.Context, season string) (map[int64]contracts.SeasonStat, error) {
	all, err := b.provider.PlayerSeasonStats(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load season stats for %s: %w", season, err)
	}
	byPlayer := make(map[int64]contracts.SeasonStat, len(all))
	for _, st := range all {
		byPlayer[st.PlayerID] = st
	}
	return byPlayer, nil
}

func (b *Builder) confirmedStarters(ctx context.Context, day time.Time) map[string]contracts.StartingGoaltender {
	starters, err := b.provider.StartingGoaltenders(ctx, day)
	if err != nil {
		if !errors.Is(err, contracts.ErrNotSupported) {
			b.log.WithError(err).Warn("Starting goaltender lookup failed, falling back to inference")
		}
		return nil
	}
	byTeam := make(map[string]contracts.StartingGoaltender, len(starters))
	for _, s := range starters {
		byTeam[s.Team] = s
	}
	return byTeam
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
