package detection

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wastebounty/backend/config"
)

func TestEvaluate(t *testing.T) {
	p := DefaultPolicy()

	require.Equal(t, Rejected, p.Evaluate(nil))
	require.Equal(t, Rejected, p.Evaluate([]Detection{}))

	result := p.Evaluate([]Detection{
		{Label: "PET_Bottles", Confidence: 0.9},
		{Label: "Aluminium_Cans", Confidence: 0.8},
		{Label: "HDPE_Milk_Bottles", Confidence: 0.7},
		{Label: "Styrofoam", Confidence: 0.6},
	})
	require.True(t, result.IsAccepted())
	require.Equal(t, 9, result.Points())
}

func TestEvaluate_PointsAtLeastCount(t *testing.T) {
	p := DefaultPolicy()
	labels := []string{"PET_Bottles", "unknown", "HDPE_Milk_Bottles", "", "Aluminium_Cans"}

	var detections []Detection
	for i := 0; i < 20; i++ {
		detections = append(detections, Detection{Label: labels[i%len(labels)], Confidence: 0.5})

		result := p.Evaluate(detections)
		require.True(t, result.IsAccepted())
		require.GreaterOrEqual(t, result.Points(), len(detections))

		// Same input, same answer.
		require.Equal(t, result, p.Evaluate(detections))
	}
}

func TestGateForCreation(t *testing.T) {
	p := DefaultPolicy()

	award, ok := p.GateForCreation([]Detection{{Label: "PET_Bottles", Confidence: 0.9}})
	require.True(t, ok)
	require.Equal(t, Award{NumObjects: 1, PointsReporter: 3, PointsCleaner: 6}, award)

	_, ok = p.GateForCreation(nil)
	require.False(t, ok)
}

func TestGateForCompletion(t *testing.T) {
	p := DefaultPolicy()

	_, clean := p.GateForCompletion(nil)
	require.True(t, clean)

	remaining, clean := p.GateForCompletion([]Detection{{Label: "PET_Bottles"}, {Label: "x"}})
	require.False(t, clean)
	require.Equal(t, 2, remaining)
}

func TestNewPolicy(t *testing.T) {
	p := NewPolicy(config.BountyConfigs{
		LabelScores: map[string]int{"Glass": 5},
	})

	require.Equal(t, 5, p.Score("Glass"))
	require.Equal(t, config.DefaultLabelScore, p.Score("PET_Bottles"))
	require.Equal(t, config.CleanerMultiplier, p.CleanerMultiplier)
}
