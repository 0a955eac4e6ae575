package contracts

import "time"

// Breakdown maps intermediate quantities of a score computation to their
// values: components, caps applied, classification tiers. Persisted as
// JSONB so calibration tooling can attribute hit-rate changes to a
// specific weight or cap.
type Breakdown map[string]interface{}

// SubScore is an immutable component score in [0,1] plus the breakdown
// that produced it. Created fresh per calculator invocation and attached
// to the context, never mutated.
type SubScore struct {
	Value     float64   `json:"value"`
	Breakdown Breakdown `json:"breakdown"`
}

// ComponentScores maps calculator name to its sub-score. The aggregator
// is generic over calculators, so components are keyed by name rather
// than held in fixed fields.
type ComponentScores map[string]SubScore

// Prediction is the final score record: one row per
// (player, game, analysis date), written by upsert so re-running a date
// overwrites rather than duplicates.
type Prediction struct {
	Context    PlayerGameContext  `json:"context"`
	FinalScore float64            `json:"final_score"` // [0,1]
	Rank       int                `json:"rank"`        // 1 = top pick of the day
	Confidence string             `json:"confidence"`  // very_high, high, medium, low
	Components ComponentScores    `json:"components"`
	Weights    map[string]float64 `json:"weights"` // weight vector actually applied
	CreatedAt  time.Time          `json:"created_at"`
}

// TopPreview is the compact view of a prediction used in day summaries.
type TopPreview struct {
	PlayerName string  `json:"player_name"`
	Team       string  `json:"team"`
	Opponent   string  `json:"opponent"`
	FinalScore float64 `json:"final_score"`
	Confidence string  `json:"confidence"`
}
