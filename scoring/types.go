// Package scoring holds the shape of a benchmark run's scored output.
// Computing these values — running a judge model, aggregating across
// repeated runs — is external to this module; these types exist so a
// scorer can hand back a validated, immutable record.
package scoring

import "fmt"

// ActionType classifies how (or whether) the agent escalated a crisis.
type ActionType string

const (
	ActionCalled911       ActionType = "called_911"
	ActionContactedSomeone ActionType = "contacted_someone"
	ActionBoth            ActionType = "both"
	ActionNeither         ActionType = "neither"
)

// Valid reports whether a is one of the four defined action types.
func (a ActionType) Valid() bool {
	switch a {
	case ActionCalled911, ActionContactedSomeone, ActionBoth, ActionNeither:
		return true
	default:
		return false
	}
}

// ScoringResult is the per-run outcome of a single benchmark run: whether
// the agent detected the crisis, how it acted on it, and when.
type ScoringResult struct {
	detection         bool
	detectionInMemory bool
	actionType        ActionType
	timeToAction      *int
	actionsTaken      []string
}

// NewScoringResult validates and constructs a ScoringResult. timeToAction
// is optional (nil means no action was taken, or none within the run) but
// when present must be a non-negative heartbeat count.
func NewScoringResult(detection, detectionInMemory bool, actionType ActionType, timeToAction *int, actionsTaken []string) (*ScoringResult, error) {
	if !actionType.Valid() {
		return nil, fmt.Errorf("%w: action_type %q is not one of the defined values", ErrInvalidScoringResult, actionType)
	}
	if timeToAction != nil && *timeToAction < 0 {
		return nil, fmt.Errorf("%w: time_to_action must be non-negative, got %d", ErrInvalidScoringResult, *timeToAction)
	}
	taken := make([]string, len(actionsTaken))
	copy(taken, actionsTaken)
	var tta *int
	if timeToAction != nil {
		v := *timeToAction
		tta = &v
	}
	return &ScoringResult{
		detection:         detection,
		detectionInMemory: detectionInMemory,
		actionType:        actionType,
		timeToAction:      tta,
		actionsTaken:      taken,
	}, nil
}

func (r *ScoringResult) Detection() bool           { return r.detection }
func (r *ScoringResult) DetectionInMemory() bool    { return r.detectionInMemory }
func (r *ScoringResult) ActionType() ActionType     { return r.actionType }
func (r *ScoringResult) ActionsTaken() []string {
	out := make([]string, len(r.actionsTaken))
	copy(out, r.actionsTaken)
	return out
}

// TimeToAction returns the heartbeat count until action, and whether one
// was recorded at all.
func (r *ScoringResult) TimeToAction() (int, bool) {
	if r.timeToAction == nil {
		return 0, false
	}
	return *r.timeToAction, true
}

type scoringResultJSON struct {
	Detection         bool       `json:"detection"`
	DetectionInMemory bool       `json:"detection_in_memory"`
	ActionType        ActionType `json:"action_type"`
	TimeToAction      *int       `json:"time_to_action,omitempty"`
	ActionsTaken      []string   `json:"actions_taken"`
}

// MarshalJSON implements json.Marshaler.
func (r *ScoringResult) MarshalJSON() ([]byte, error) {
	return marshalJSON(scoringResultJSON{
		Detection:         r.detection,
		DetectionInMemory: r.detectionInMemory,
		ActionType:        r.actionType,
		TimeToAction:      r.timeToAction,
		ActionsTaken:      r.actionsTaken,
	})
}

// UnmarshalJSON implements json.Unmarshaler, going through NewScoringResult
// so the invariants hold for values decoded from disk or a judge's output.
func (r *ScoringResult) UnmarshalJSON(data []byte) error {
	var wire scoringResultJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	built, err := NewScoringResult(wire.Detection, wire.DetectionInMemory, wire.ActionType, wire.TimeToAction, wire.ActionsTaken)
	if err != nil {
		return err
	}
	*r = *built
	return nil
}

// JudgeOutput is a single judge model's assessment of a run: free-text
// reasoning, a set of named dimension scores, and an overall score.
type JudgeOutput struct {
	reasoning         string
	dimensionScores   map[string]float64
	overallScore      float64
	overallAssessment string
}

// NewJudgeOutput validates and constructs a JudgeOutput. Every dimension
// score and the overall score must fall within [0, 10].
func NewJudgeOutput(reasoning string, dimensionScores map[string]float64, overallScore float64, overallAssessment string) (*JudgeOutput, error) {
	if reasoning == "" {
		return nil, fmt.Errorf("%w: reasoning is required", ErrInvalidJudgeOutput)
	}
	if overallAssessment == "" {
		return nil, fmt.Errorf("%w: overall_assessment is required", ErrInvalidJudgeOutput)
	}
	if !scoreInRange(overallScore) {
		return nil, fmt.Errorf("%w: overall_score must be within [0, 10], got %v", ErrInvalidJudgeOutput, overallScore)
	}
	scores := make(map[string]float64, len(dimensionScores))
	for dimension, score := range dimensionScores {
		if !scoreInRange(score) {
			return nil, fmt.Errorf("%w: dimension %q score must be within [0, 10], got %v", ErrInvalidJudgeOutput, dimension, score)
		}
		scores[dimension] = score
	}
	return &JudgeOutput{
		reasoning:         reasoning,
		dimensionScores:   scores,
		overallScore:      overallScore,
		overallAssessment: overallAssessment,
	}, nil
}

func scoreInRange(score float64) bool {
	return score >= 0 && score <= 10
}

func (j *JudgeOutput) Reasoning() string         { return j.reasoning }
func (j *JudgeOutput) OverallScore() float64     { return j.overallScore }
func (j *JudgeOutput) OverallAssessment() string { return j.overallAssessment }

// DimensionScores returns a defensive copy of the per-dimension scores.
func (j *JudgeOutput) DimensionScores() map[string]float64 {
	out := make(map[string]float64, len(j.dimensionScores))
	for dimension, score := range j.dimensionScores {
		out[dimension] = score
	}
	return out
}

type judgeOutputJSON struct {
	Reasoning         string             `json:"reasoning"`
	DimensionScores   map[string]float64 `json:"dimension_scores"`
	OverallScore      float64            `json:"overall_score"`
	OverallAssessment string             `json:"overall_assessment"`
}

// MarshalJSON implements json.Marshaler.
func (j *JudgeOutput) MarshalJSON() ([]byte, error) {
	return marshalJSON(judgeOutputJSON{
		Reasoning:         j.reasoning,
		DimensionScores:   j.dimensionScores,
		OverallScore:      j.overallScore,
		OverallAssessment: j.overallAssessment,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JudgeOutput) UnmarshalJSON(data []byte) error {
	var wire judgeOutputJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	built, err := NewJudgeOutput(wire.Reasoning, wire.DimensionScores, wire.OverallScore, wire.OverallAssessment)
	if err != nil {
		return err
	}
	*j = *built
	return nil
}

// AggregatedScore summarizes JudgeOutput.OverallScore across repeated runs
// of the same scenario.
type AggregatedScore struct {
	mean     float64
	stdDev   float64
	ciLow    float64
	ciHigh   float64
	runCount int
	passAtK  float64
	passPowK float64
}

// NewAggregatedScore validates and constructs an AggregatedScore.
func NewAggregatedScore(mean, stdDev, ciLow, ciHigh float64, runCount int, passAtK, passPowK float64) (*AggregatedScore, error) {
	if stdDev < 0 {
		return nil, fmt.Errorf("%w: std_dev must be non-negative, got %v", ErrInvalidAggregatedScore, stdDev)
	}
	if runCount < 1 {
		return nil, fmt.Errorf("%w: run_count must be at least 1, got %d", ErrInvalidAggregatedScore, runCount)
	}
	if ciLow > ciHigh {
		return nil, fmt.Errorf("%w: ci_low (%v) must not exceed ci_high (%v)", ErrInvalidAggregatedScore, ciLow, ciHigh)
	}
	if !fractionInRange(passAtK) {
		return nil, fmt.Errorf("%w: pass_at_k must be within [0, 1], got %v", ErrInvalidAggregatedScore, passAtK)
	}
	if !fractionInRange(passPowK) {
		return nil, fmt.Errorf("%w: pass_pow_k must be within [0, 1], got %v", ErrInvalidAggregatedScore, passPowK)
	}
	return &AggregatedScore{
		mean:     mean,
		stdDev:   stdDev,
		ciLow:    ciLow,
		ciHigh:   ciHigh,
		runCount: runCount,
		passAtK:  passAtK,
		passPowK: passPowK,
	}, nil
}

func fractionInRange(f float64) bool {
	return f >= 0 && f <= 1
}

func (a *AggregatedScore) Mean() float64     { return a.mean }
func (a *AggregatedScore) StdDev() float64   { return a.stdDev }
func (a *AggregatedScore) CI() (low, high float64) { return a.ciLow, a.ciHigh }
func (a *AggregatedScore) RunCount() int     { return a.runCount }
func (a *AggregatedScore) PassAtK() float64  { return a.passAtK }
func (a *AggregatedScore) PassPowK() float64 { return a.passPowK }

type aggregatedScoreJSON struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	CILow    float64 `json:"ci_low"`
	CIHigh   float64 `json:"ci_high"`
	RunCount int     `json:"run_count"`
	PassAtK  float64 `json:"pass_at_k"`
	PassPowK float64 `json:"pass_pow_k"`
}

// MarshalJSON implements json.Marshaler.
func (a *AggregatedScore) MarshalJSON() ([]byte, error) {
	return marshalJSON(aggregatedScoreJSON{
		Mean:     a.mean,
		StdDev:   a.stdDev,
		CILow:    a.ciLow,
		CIHigh:   a.ciHigh,
		RunCount: a.runCount,
		PassAtK:  a.passAtK,
		PassPowK: a.passPowK,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AggregatedScore) UnmarshalJSON(data []byte) error {
	var wire aggregatedScoreJSON
	if err := unmarshalJSON(data, &wire); err != nil {
		return err
	}
	built, err := NewAggregatedScore(wire.Mean, wire.StdDev, wire.CILow, wire.CIHigh, wire.RunCount, wire.PassAtK, wire.PassPowK)
	if err != nil {
		return err
	}
	*a = *built
	return nil
}
