package domain

import (
	"fmt"
	"math"
	"time"
)

// GhostRisk is the discrete risk bucket derived from a Truth Score.
type GhostRisk string

const (
	RiskLow    GhostRisk = "low"
	RiskMedium GhostRisk = "medium"
	RiskHigh   GhostRisk = "high"
)

// ParseGhostRisk accepts low, medium or high in any case. Empty input
// returns "" so callers can tell an absent risk from a supplied one.
func ParseGhostRisk(s string) (GhostRisk, error) {
	switch normalize(s) {
	case "":
		return "", nil
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	}
	return "", newValidationError("ghostRisk", s, "must be one of low, medium, high")
}

// Variant names a scoring formula.
type Variant string

const (
	VariantWeighted    Variant = "weighted"
	VariantCategorical Variant = "categorical"
)

// Dimension identifies one input of a scoring formula.
type Dimension string

const (
	DimensionBase               Dimension = "base"
	DimensionAgeFactor          Dimension = "ageFactor"
	DimensionResponseRate       Dimension = "responseRate"
	DimensionGhostSignal        Dimension = "ghostSignal"
	DimensionRecruiterActivity  Dimension = "recruiterActivity"
	DimensionRepostFrequency    Dimension = "repostFrequency"
	DimensionPostingAge         Dimension = "postingAge"
	DimensionCommunitySentiment Dimension = "communitySentiment"
)

// Contribution is the signed number of points one dimension added to a score.
type Contribution struct {
	Dimension Dimension `json:"dimension"`
	Input     string    `json:"input"`
	Points    float64   `json:"points"`
}

// TruthScoreResult is the output of a ScoreStrategy. It is never mutated.
type TruthScoreResult struct {
	Variant   Variant        `json:"variant"`
	Score     int            `json:"truthScore"`
	Risk      GhostRisk      `json:"ghostRisk"`
	Breakdown []Contribution `json:"breakdown"`
	Why       string         `json:"why"`
}

// Points returns the contribution recorded for d, or 0.
func (r TruthScoreResult) Points(d Dimension) float64 {
	for _, c := range r.Breakdown {
		if c.Dimension == d {
			return c.Points
		}
	}
	return 0
}

// ScoreInput carries the inputs of either formula. A strategy reads only
// its own half and rejects the call when that half is missing.
type ScoreInput struct {
	Weighted    *WeightedInput
	Categorical *CategoricalInput
}

// ScoreStrategy converts job signals into a Truth Score. Implementations are
// pure: now is the only notion of time they see.
type ScoreStrategy interface {
	Variant() Variant
	Score(in ScoreInput, now time.Time) (TruthScoreResult, error)
}

// StrategyFor returns the strategy registered under name.
func StrategyFor(name string) (ScoreStrategy, error) {
	switch Variant(normalize(name)) {
	case VariantWeighted:
		return WeightedContinuous{}, nil
	case VariantCategorical:
		return CategoricalAdditive{}, nil
	}
	return nil, newValidationError("strategy", name, fmt.Sprintf("must be %q or %q", VariantWeighted, VariantCategorical))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
