package scoring

import (
	"github.com/hmelo/puckline/internal/contracts"
)

// GoalieWeakness converts an opposing goaltender's profile into a
// [0,1] weakness value: higher means a softer matchup for shooters.
type GoalieWeakness struct {
	params GoalieWeaknessParams
}

// NewGoalieWeakness creates an evaluator with the given parameters.
func NewGoalieWeakness(params GoalieWeaknessParams) *GoalieWeakness {
	return &GoalieWeakness{params: params}
}

// Evaluate scores a goaltender from save percentage, goals against
// average, and confirmation status. Unconfirmed starters score
// slightly weaker to reflect the chance the backup draws in.
func (g *GoalieWeakness) Evaluate(goalie contracts.GoalieInference) (float64, contracts.Breakdown) {
	p := g.params

	// A goaltender SavePctRange below league average is maximally
	// weak; the same span above is maximally strong.
	svComponent := clamp01((p.LeagueAvgSavePct-goalie.SavePct)/p.SavePctRange + 0.5)
	gaaComponent := clamp01((goalie.GAA-p.LeagueAvgGAA)/p.GAARange + 0.5)

	statusComponent := p.InferredStatus
	status := "inferred"
	if goalie.Confirmed {
		statusComponent = p.ConfirmedStatus
		status = "confirmed"
	}

	weakness := clamp01(
		svComponent*p.SavePctWeight +
			gaaComponent*p.GAAWeight +
			statusComponent*p.StatusWeight,
	)

	return round4(weakness), contracts.Breakdown{
		"goalie_id":        goalie.PlayerID,
		"goalie_name":      goalie.Name,
		"save_pct":         goalie.SavePct,
		"gaa":              goalie.GAA,
		"status":           status,
		"sv_component":     round4(svComponent),
		"gaa_component":    round4(gaaComponent),
		"status_component": statusComponent,
	}
}

// Proxy derives a weakness value from save percentage and goals
// against average alone, for callers working off aggregate stats
// without start confirmation.
func Proxy(savePct, gaa float64) float64 {
	svTerm := (0.920 - savePct) / 0.040
	gaaTerm := (gaa - 2.0) / 2.0
	return round4(clamp01((svTerm+gaaTerm)/2 + 0.5))
}
