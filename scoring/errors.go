package scoring

import "errors"

// ErrInvalidScoringResult is returned by NewScoringResult when its inputs
// violate an invariant.
var ErrInvalidScoringResult = errors.New("scoring: invalid scoring result")

// ErrInvalidJudgeOutput is returned by NewJudgeOutput when its inputs
// violate an invariant.
var ErrInvalidJudgeOutput = errors.New("scoring: invalid judge output")

// ErrInvalidAggregatedScore is returned by NewAggregatedScore when its
// inputs violate an invariant.
var ErrInvalidAggregatedScore = errors.New("scoring: invalid aggregated score")
