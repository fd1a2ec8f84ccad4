package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// Weights of the continuous formula
	WeightAgeFactor    = 0.4
	WeightResponseRate = 0.4
	WeightGhostSignal  = -0.2

	// Values used when an input is not supplied
	DefaultAgeFactor    = 50.0
	DefaultResponseRate = 60.0
	DefaultGhostSignal  = 30.0

	// Risk thresholds (inclusive)
	WeightedLowRiskMin    = 70
	WeightedMediumRiskMin = 40
)

// WeightedInput holds the three normalized [0,100] inputs of the continuous
// formula. Nil fields take their Default* value.
type WeightedInput struct {
	AgeFactor    *float64 `json:"ageFactor,omitempty"`
	ResponseRate *float64 `json:"responseRate,omitempty"`
	GhostSignal  *float64 `json:"ghostSignal,omitempty"`
}

// Resolved returns the three inputs with defaults applied.
func (in WeightedInput) Resolved() (ageFactor, responseRate, ghostSignal float64) {
	return valueOr(in.AgeFactor, DefaultAgeFactor),
		valueOr(in.ResponseRate, DefaultResponseRate),
		valueOr(in.GhostSignal, DefaultGhostSignal)
}

// AgeFactor converts a posting age into a freshness score.
// present=false means no date was supplied at all.
func AgeFactor(days float64, present bool) float64 {
	if !present {
		return DefaultAgeFactor
	}
	switch {
	case days < 7:
		return 90
	case days < 14:
		return 75
	case days < 30:
		return 60
	case days < 60:
		return 40
	case days < 90:
		return 25
	default:
		return 10
	}
}

// AgeFactorFor computes the age factor of a raw posted date.
func AgeFactorFor(postedDate string, now time.Time) float64 {
	return AgeFactor(PostingAgeDays(postedDate, now))
}

// WeightedRisk buckets a continuous-formula score.
func WeightedRisk(score int) GhostRisk {
	switch {
	case score >= WeightedLowRiskMin:
		return RiskLow
	case score >= WeightedMediumRiskMin:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// WeightedContinuous is the 0.4/0.4/-0.2 formula clamped to [0,100].
type WeightedContinuous struct{}

func (WeightedContinuous) Variant() Variant { return VariantWeighted }

func (w WeightedContinuous) Score(in ScoreInput, _ time.Time) (TruthScoreResult, error) {
	if in.Weighted == nil {
		return TruthScoreResult{}, newValidationError("input", "", "weighted inputs are required")
	}
	return ScoreWeighted(*in.Weighted)
}

// ScoreWeighted runs the continuous formula directly.
func ScoreWeighted(in WeightedInput) (TruthScoreResult, error) {
	age, rate, ghost := in.Resolved()
	for _, f := range []struct {
		name string
		v    float64
	}{{"ageFactor", age}, {"responseRate", rate}, {"ghostSignal", ghost}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return TruthScoreResult{}, newValidationError(f.name, fmt.Sprint(f.v), "must be a finite number")
		}
	}

	breakdown := []Contribution{
		{Dimension: DimensionAgeFactor, Input: formatInput(age), Points: WeightAgeFactor * age},
		{Dimension: DimensionResponseRate, Input: formatInput(rate), Points: WeightResponseRate * rate},
		{Dimension: DimensionGhostSignal, Input: formatInput(ghost), Points: WeightGhostSignal * ghost},
	}

	raw := 0.0
	for _, c := range breakdown {
		raw += c.Points
	}
	score := clampInt(roundHalfUp(raw), 0, 100)

	return TruthScoreResult{
		Variant:   VariantWeighted,
		Score:     score,
		Risk:      WeightedRisk(score),
		Breakdown: breakdown,
		Why:       weightedWhy(age, rate, ghost),
	}, nil
}

func weightedWhy(age, rate, ghost float64) string {
	var reasons []string
	switch {
	case age >= 75:
		reasons = append(reasons, "Recently posted")
	case age <= 25:
		reasons = append(reasons, "Posting has been up for a long time")
	}
	switch {
	case rate >= 70:
		reasons = append(reasons, fmt.Sprintf("Community reports a %s%% response rate", formatInput(rate)))
	case rate < 40:
		reasons = append(reasons, fmt.Sprintf("Community reports only a %s%% response rate", formatInput(rate)))
	}
	if ghost >= 50 {
		reasons = append(reasons, "Frequent ghosting mentions found online")
	}
	if len(reasons) == 0 {
		return "Moderate signals across all indicators."
	}
	return strings.Join(reasons, ". ") + "."
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func formatInput(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
