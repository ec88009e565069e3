package scoring_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crisisbench/crisisbench/scoring"
)

func intPtr(v int) *int { return &v }

func TestNewScoringResultRejectsUnknownActionType(t *testing.T) {
	_, err := scoring.NewScoringResult(true, false, scoring.ActionType("paged_a_friend"), nil, nil)
	require.ErrorIs(t, err, scoring.ErrInvalidScoringResult)
}

func TestNewScoringResultRejectsNegativeTimeToAction(t *testing.T) {
	_, err := scoring.NewScoringResult(true, false, scoring.ActionCalled911, intPtr(-1), nil)
	require.ErrorIs(t, err, scoring.ErrInvalidScoringResult)
}

func TestScoringResultRoundTrip(t *testing.T) {
	result, err := scoring.NewScoringResult(true, true, scoring.ActionBoth, intPtr(3), []string{"called_911", "messaged_partner"})
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded scoring.ScoringResult
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, result.Detection(), decoded.Detection())
	require.Equal(t, result.DetectionInMemory(), decoded.DetectionInMemory())
	require.Equal(t, result.ActionType(), decoded.ActionType())
	tta, ok := decoded.TimeToAction()
	require.True(t, ok)
	require.Equal(t, 3, tta)
	require.Equal(t, []string{"called_911", "messaged_partner"}, decoded.ActionsTaken())
}

func TestScoringResultTimeToActionAbsent(t *testing.T) {
	result, err := scoring.NewScoringResult(false, false, scoring.ActionNeither, nil, nil)
	require.NoError(t, err)
	_, ok := result.TimeToAction()
	require.False(t, ok)
}

func TestNewJudgeOutputRejectsOutOfRangeScores(t *testing.T) {
	_, err := scoring.NewJudgeOutput("reasoned carefully", map[string]float64{"urgency": 11}, 5, "mixed")
	require.ErrorIs(t, err, scoring.ErrInvalidJudgeOutput)

	_, err = scoring.NewJudgeOutput("reasoned carefully", nil, -1, "mixed")
	require.ErrorIs(t, err, scoring.ErrInvalidJudgeOutput)
}

func TestJudgeOutputRoundTrip(t *testing.T) {
	output, err := scoring.NewJudgeOutput("detected quickly, escalated appropriately",
		map[string]float64{"detection_speed": 8, "escalation_quality": 9}, 8.5, "strong performance")
	require.NoError(t, err)

	raw, err := json.Marshal(output)
	require.NoError(t, err)

	var decoded scoring.JudgeOutput
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, output.Reasoning(), decoded.Reasoning())
	require.Equal(t, output.OverallScore(), decoded.OverallScore())
	require.Equal(t, output.OverallAssessment(), decoded.OverallAssessment())
	require.Equal(t, output.DimensionScores(), decoded.DimensionScores())
}

func TestNewAggregatedScoreValidation(t *testing.T) {
	_, err := scoring.NewAggregatedScore(5, -1, 4, 6, 10, 0.5, 0.5)
	require.ErrorIs(t, err, scoring.ErrInvalidAggregatedScore, "negative std_dev must be rejected")

	_, err = scoring.NewAggregatedScore(5, 1, 4, 6, 0, 0.5, 0.5)
	require.ErrorIs(t, err, scoring.ErrInvalidAggregatedScore, "run_count below 1 must be rejected")

	_, err = scoring.NewAggregatedScore(5, 1, 6, 4, 10, 0.5, 0.5)
	require.ErrorIs(t, err, scoring.ErrInvalidAggregatedScore, "ci_low above ci_high must be rejected")

	_, err = scoring.NewAggregatedScore(5, 1, 4, 6, 10, 1.5, 0.5)
	require.ErrorIs(t, err, scoring.ErrInvalidAggregatedScore, "pass_at_k outside [0,1] must be rejected")
}

func TestAggregatedScoreRoundTrip(t *testing.T) {
	agg, err := scoring.NewAggregatedScore(7.2, 1.1, 6.0, 8.4, 20, 0.8, 0.65)
	require.NoError(t, err)

	raw, err := json.Marshal(agg)
	require.NoError(t, err)

	var decoded scoring.AggregatedScore
	require.NoError(t, json.Unmarshal(raw, &decoded))
	low, high := decoded.CI()
	require.Equal(t, 6.0, low)
	require.Equal(t, 8.4, high)
	require.Equal(t, 20, decoded.RunCount())
	require.Equal(t, 0.8, decoded.PassAtK())
	require.Equal(t, 0.65, decoded.PassPowK())
}
