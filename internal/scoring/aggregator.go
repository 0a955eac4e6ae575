package scoring

import (
	"time"

	"github.com/hmelo/puckline/internal/contracts"
)

// Confidence tiers, ordered strongest to weakest.
const (
	ConfidenceVeryHigh = "very_high"
	ConfidenceHigh     = "high"
	ConfidenceMedium   = "medium"
	ConfidenceLow      = "low"
)

// Aggregator runs a set of calculators over a player-game context and
// folds the sub-scores into one final score with a position-aware
// weight vector.
type Aggregator struct {
	calculators []Calculator
	weights     Weights
}

// NewAggregator creates an aggregator. Calculator order does not affect
// the result; weights are matched by calculator name.
func NewAggregator(calculators []Calculator, weights Weights) *Aggregator {
	return &Aggregator{calculators: calculators, weights: weights}
}

// Score computes all components and the weighted final score for one
// context. Rank is left zero; it is assigned after the day's slate is
// sorted.
func (a *Aggregator) Score(pgc *contracts.PlayerGameContext) contracts.Prediction {
	components := make(contracts.ComponentScores, len(a.calculators))
	for _, calc := range a.calculators {
		components[calc.Name()] = calc.Compute(pgc)
	}

	applied := a.weights.For(pgc.Position)

	// Normalize over the weights that actually have a matching
	// component, so a missing calculator redistributes its share
	// instead of deflating everyone.
	var total float64
	for name, weight := range applied {
		if _, ok := components[name]; ok {
			total += weight
		}
	}

	var final float64
	normalized := make(map[string]float64, len(applied))
	if total > 0 {
		for name, weight := range applied {
			sub, ok := components[name]
			if !ok {
				continue
			}
			w := weight / total
			normalized[name] = round4(w)
			final += sub.Value * w
		}
	}

	return contracts.Prediction{
		Context:    *pgc,
		FinalScore: round4(clamp01(final)),
		Confidence: confidenceTier(pgc),
		Components: components,
		Weights:    normalized,
		CreatedAt:  time.Now().UTC(),
	}
}

// confidenceTier classifies how much the prediction can be trusted,
// from deployment and sample size rather than from the score itself: a
// top-line PP1 skater on a streak is a known quantity, a depth player
// with two games of data is a guess.
func confidenceTier(pgc *contracts.PlayerGameContext) string {
	line := pgc.LineNumber
	pp := pgc.PPUnit
	recent := pgc.Recent

	switch {
	case line == 1 && pp == 1 && recent.PPG >= 0.8 && recent.PointStreak >= 2:
		return ConfidenceVeryHigh
	case line <= 2 && (pp > 0 || recent.PPG >= 0.6) && recent.Games >= 5:
		return ConfidenceHigh
	case line <= 3 && recent.Games >= 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
