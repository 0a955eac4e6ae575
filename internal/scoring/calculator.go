package scoring

import (
	"math"

	"github.com/hmelo/puckline/internal/contracts"
)

// Calculator names. These key the component map in every prediction and
// the weight vector, so they are stable identifiers, not display text.
const (
	NameLineOpportunity = "line_opportunity"
	NameRecentForm      = "recent_form"
	NameMatchup         = "matchup"
	NameSituational     = "situational"
)

// Calculator computes one normalized sub-score from an enriched player
// context. Implementations are pure: same context, same result, no side
// effects. The aggregator treats all calculators uniformly.
type Calculator interface {
	Name() string
	Compute(pgc *contracts.PlayerGameContext) contracts.SubScore
}

// clamp01 bounds a score to [0,1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round4 trims a score to four decimal places for stable persistence
// and comparison against historical runs.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
