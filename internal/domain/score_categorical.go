package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	CategoricalBase = 50

	PointsRecruiterHigh     = 40
	PointsRecruiterModerate = 20

	PointsRepostHigh = -30
	PointsRepostLow  = -10

	PointsStalePosting = -20 // older than 30 days
	PointsAgingPosting = -10 // older than 14 days

	PointsSentimentNegative = -25
	PointsSentimentPositive = 15

	// Risk thresholds. LOW is strictly above 80; MEDIUM is inclusive.
	CategoricalLowRiskAbove  = 80
	CategoricalMediumRiskMin = 50
)

// CategoricalInput holds the four categorical inputs of the additive formula.
type CategoricalInput struct {
	Signal     GhostSignal
	PostedDate string
}

// CategoricalRisk buckets an additive-formula score.
func CategoricalRisk(score int) GhostRisk {
	switch {
	case score > CategoricalLowRiskAbove:
		return RiskLow
	case score >= CategoricalMediumRiskMin:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// CategoricalAdditive starts at 50, adds signed points per category and
// clamps to [1,100].
type CategoricalAdditive struct{}

func (CategoricalAdditive) Variant() Variant { return VariantCategorical }

func (c CategoricalAdditive) Score(in ScoreInput, now time.Time) (TruthScoreResult, error) {
	if in.Categorical == nil {
		return TruthScoreResult{}, newValidationError("input", "", "categorical inputs are required")
	}
	return ScoreCategorical(*in.Categorical, now)
}

// ScoreCategorical runs the additive formula directly.
func ScoreCategorical(in CategoricalInput, now time.Time) (TruthScoreResult, error) {
	sig := in.Signal
	if err := sig.Validate(); err != nil {
		return TruthScoreResult{}, err
	}
	// Absent fields resolve to their neutral member.
	sig, _ = ParseGhostSignal(string(sig.RecruiterActivity), string(sig.RepostFrequency), string(sig.CommunitySentiment))

	days, present := PostingAgeDays(in.PostedDate, now)
	if !present {
		days = UnknownAgeDays
	}

	var reasons []string

	recruiter := 0
	switch sig.RecruiterActivity {
	case RecruiterHigh:
		recruiter = PointsRecruiterHigh
		reasons = append(reasons, "Strong recruiter activity (high)")
	case RecruiterModerate:
		recruiter = PointsRecruiterModerate
		reasons = append(reasons, "Strong recruiter activity (moderate)")
	}

	repost := 0
	switch sig.RepostFrequency {
	case RepostHigh:
		repost = PointsRepostHigh
		reasons = append(reasons, "High repost frequency suggests this may be an evergreen posting")
	case RepostLow:
		repost = PointsRepostLow
	}

	age := 0
	switch {
	case days > 30:
		age = PointsStalePosting
		reasons = append(reasons, fmt.Sprintf("Posted %d days ago, may be stale", int(days)))
	case days > 14:
		age = PointsAgingPosting
	case days < 7:
		reasons = append(reasons, fmt.Sprintf("Fresh posting (%d days old)", int(days)))
	}

	sentiment := 0
	switch sig.CommunitySentiment {
	case SentimentNegative:
		sentiment = PointsSentimentNegative
		reasons = append(reasons, "Community reports suggest ghosting concerns")
	case SentimentPositive:
		sentiment = PointsSentimentPositive
		reasons = append(reasons, "Positive community sentiment")
	}

	raw := CategoricalBase + recruiter + repost + age + sentiment
	score := clampInt(raw, 1, 100)

	why := "Moderate signals across all indicators."
	if len(reasons) > 0 {
		why = strings.Join(reasons, ". ") + "."
	}

	return TruthScoreResult{
		Variant: VariantCategorical,
		Score:   score,
		Risk:    CategoricalRisk(score),
		Breakdown: []Contribution{
			{Dimension: DimensionBase, Input: "base", Points: CategoricalBase},
			{Dimension: DimensionRecruiterActivity, Input: string(sig.RecruiterActivity), Points: float64(recruiter)},
			{Dimension: DimensionRepostFrequency, Input: string(sig.RepostFrequency), Points: float64(repost)},
			{Dimension: DimensionPostingAge, Input: fmt.Sprintf("%dd", int(days)), Points: float64(age)},
			{Dimension: DimensionCommunitySentiment, Input: string(sig.CommunitySentiment), Points: float64(sentiment)},
		},
		Why: why,
	}, nil
}
