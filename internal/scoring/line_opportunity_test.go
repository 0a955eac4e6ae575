package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmelo/puckline/internal/contracts"
)

func TestLineOpportunityCalculator_Compute(t *testing.T) {
	calc := NewLineOpportunityCalculator(DefaultLineOpportunityParams())

	tests := []struct {
		name     string
		ctx      contracts.PlayerGameContext
		expected float64
		tier     string
	}{
		{
			name: "elite forward: line 1, PP1, ceiling TOI",
			ctx: contracts.PlayerGameContext{
				Position:      contracts.PositionCenter,
				LineNumber:    1,
				PPUnit:        1,
				AvgTOIMinutes: 22.0,
			},
			// 1.00*0.50 + 0.30*0.35 + 1.0*0.15
			expected: 0.755,
			tier:     TierElite,
		},
		{
			name: "defenseman on PP1 gets the boost",
			ctx: contracts.PlayerGameContext{
				Position:      contracts.PositionDefense,
				LineNumber:    1,
				PPUnit:        1,
				AvgTOIMinutes: 22.0,
			},
			// 1.00*0.50 + (0.30*1.20)*0.35 + 1.0*0.15
			expected: 0.776,
			tier:     TierElite,
		},
		{
			name: "second liner on PP2",
			ctx: contracts.PlayerGameContext{
				Position:      contracts.PositionLeftWing,
				LineNumber:    2,
				PPUnit:        2,
				AvgTOIMinutes: 15.0,
			},
			// 0.70*0.50 + 0.15*0.35 + 0.5*0.15
			expected: 0.4775,
			tier:     TierTop6PP,
		},
		{
			name: "fourth liner at the TOI floor",
			ctx: contracts.PlayerGameContext{
				Position:      contracts.PositionRightWing,
				LineNumber:    4,
				PPUnit:        0,
				AvgTOIMinutes: 8.0,
			},
			// 0.15*0.50 only
			expected: 0.075,
			tier:     TierDepth,
		},
		{
			name: "unknown line scores as depth",
			ctx: contracts.PlayerGameContext{
				Position:      contracts.PositionCenter,
				LineNumber:    7,
				PPUnit:        0,
				AvgTOIMinutes: 12.0,
			},
			// 0.15*0.50 + (12-8)/14*0.15
			expected: 0.1179,
			tier:     TierDepth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := calc.Compute(&tt.ctx)
			assert.InDelta(t, tt.expected, sub.Value, 0.0001)
			assert.Equal(t, tt.tier, sub.Breakdown["role_tier"])
		})
	}
}

func TestLineOpportunityCalculator_TOIClamped(t *testing.T) {
	calc := NewLineOpportunityCalculator(DefaultLineOpportunityParams())

	over := calc.Compute(&contracts.PlayerGameContext{
		Position: contracts.PositionDefense, LineNumber: 1, AvgTOIMinutes: 28.0,
	})
	at := calc.Compute(&contracts.PlayerGameContext{
		Position: contracts.PositionDefense, LineNumber: 1, AvgTOIMinutes: 22.0,
	})
	assert.Equal(t, at.Value, over.Value, "TOI beyond the ceiling earns nothing extra")

	under := calc.Compute(&contracts.PlayerGameContext{
		Position: contracts.PositionCenter, LineNumber: 4, AvgTOIMinutes: 5.0,
	})
	assert.Equal(t, 0.0, under.Breakdown["toi_component"])
}

func TestLineOpportunityCalculator_ForwardPP1NoBoost(t *testing.T) {
	calc := NewLineOpportunityCalculator(DefaultLineOpportunityParams())

	sub := calc.Compute(&contracts.PlayerGameContext{
		Position: contracts.PositionCenter, LineNumber: 1, PPUnit: 1, AvgTOIMinutes: 22.0,
	})
	assert.InDelta(t, 0.30, sub.Breakdown["pp_component"].(float64), 0.0001)
}
