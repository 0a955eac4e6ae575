package scoring

import (
	"github.com/hmelo/puckline/internal/contracts"
)

// Matchup methods, recorded in the breakdown so downstream consumers
// know how much history backed the score.
const (
	MethodConfidentSvG = "confident_svg"
	MethodLimitedSvG   = "limited_svg"
	MethodProxy        = "goalie_weakness_proxy"
)

// MatchupCalculator scores a skater against tonight's opposing
// goaltender, blending head-to-head history with the goaltender's
// general weakness.
type MatchupCalculator struct {
	params MatchupParams
}

// NewMatchupCalculator creates a calculator with the given parameters.
func NewMatchupCalculator(params MatchupParams) *MatchupCalculator {
	return &MatchupCalculator{params: params}
}

// Name implements Calculator
func (c *MatchupCalculator) Name() string {
	return NameMatchup
}

// Compute implements Calculator. With no head-to-head history the
// score falls back entirely to the goaltender-weakness value already
// on the context.
func (c *MatchupCalculator) Compute(pgc *contracts.PlayerGameContext) contracts.SubScore {
	p := c.params
	weakness := pgc.GoalieWeakness

	if pgc.VsGoalie == nil || pgc.VsGoalie.GamesFaced == 0 {
		return contracts.SubScore{
			Value: round4(clamp01(weakness)),
			Breakdown: contracts.Breakdown{
				"method":          MethodProxy,
				"games_faced":     0,
				"goalie_weakness": round4(weakness),
			},
		}
	}

	h := pgc.VsGoalie
	svgScore := clamp01(h.PPG / p.ElitePPG)

	method := MethodLimitedSvG
	svgWeight := p.LimitedSvGWeight
	if h.GamesFaced >= p.MinConfidentGames {
		method = MethodConfidentSvG
		svgWeight = p.SvGWeight
	}

	// Confident history carries SvGWeight against WeaknessWeight; a
	// thin sample keeps the weakness side dominant.
	weaknessWeight := 1.0 - svgWeight
	if method == MethodConfidentSvG {
		weaknessWeight = p.WeaknessWeight
	}

	score := clamp01(svgScore*svgWeight + weakness*weaknessWeight)

	return contracts.SubScore{
		Value: round4(score),
		Breakdown: contracts.Breakdown{
			"method":          method,
			"games_faced":     h.GamesFaced,
			"vs_goalie_ppg":   round4(h.PPG),
			"svg_score":       round4(svgScore),
			"svg_weight":      svgWeight,
			"weakness_weight": weaknessWeight,
			"goalie_weakness": round4(weakness),
		},
	}
}
