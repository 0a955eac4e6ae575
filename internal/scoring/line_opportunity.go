package scoring

import (
	"github.com/hmelo/puckline/internal/contracts"
)

// Role tiers derived from line and PP deployment, for diagnostics and
// confidence tiering.
const (
	TierElite   = "elite"
	TierTop6PP  = "top_6_pp"
	TierTop6    = "top_6"
	TierMiddle6 = "middle_6"
	TierDepth   = "depth"
)

// LineOpportunityCalculator scores a skater's deployment quality: line
// number, power-play unit and average ice time.
type LineOpportunityCalculator struct {
	params LineOpportunityParams
}

// NewLineOpportunityCalculator creates a calculator with the given
// parameter tables.
func NewLineOpportunityCalculator(params LineOpportunityParams) *LineOpportunityCalculator {
	return &LineOpportunityCalculator{params: params}
}

// Name implements Calculator
func (c *LineOpportunityCalculator) Name() string {
	return NameLineOpportunity
}

// Compute implements Calculator. Missing role attributes default to the
// weakest tier; there are no error conditions.
func (c *LineOpportunityCalculator) Compute(pgc *contracts.PlayerGameContext) contracts.SubScore {
	p := c.params

	lineNumber := pgc.LineNumber
	ppUnit := pgc.PPUnit

	// Line component: discrete tier score, unknown lines score as line 4
	lineComponent, ok := p.LineScores[lineNumber]
	if !ok {
		lineComponent = p.LineScores[4]
	}

	// PP component, unknown units score as no PP time
	ppComponent := p.PPBonuses[ppUnit]

	// Defensemen quarterbacking the top unit are under-valued by the
	// flat table
	if pgc.IsDefense() && ppUnit == 1 {
		ppComponent = p.PPBonuses[1] * p.DefensePP1Boost
	}

	// TOI component: linear between the floor and ceiling, clamped
	toiComponent := 0.5
	if toiRange := p.EliteTOI - p.MinTOI; toiRange > 0 {
		toiComponent = clamp01((pgc.AvgTOIMinutes - p.MinTOI) / toiRange)
	}

	score := lineComponent*p.LineWeight +
		ppComponent*p.PPWeight +
		toiComponent*p.TOIWeight

	// The defense boost can overshoot
	score = clamp01(score)

	return contracts.SubScore{
		Value: round4(score),
		Breakdown: contracts.Breakdown{
			"line_number":    lineNumber,
			"pp_unit":        ppUnit,
			"avg_toi":        round4(pgc.AvgTOIMinutes),
			"line_component": round4(lineComponent),
			"pp_component":   round4(ppComponent),
			"toi_component":  round4(toiComponent),
			"role_tier":      roleTier(lineNumber, ppUnit),
		},
	}
}

// roleTier classifies deployment for diagnostics
func roleTier(lineNumber, ppUnit int) string {
	switch {
	case lineNumber == 1 && ppUnit == 1:
		return TierElite
	case lineNumber <= 2 && ppUnit > 0:
		return TierTop6PP
	case lineNumber <= 2:
		return TierTop6
	case lineNumber == 3:
		return TierMiddle6
	default:
		return TierDepth
	}
}
