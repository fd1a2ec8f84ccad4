package scoring

import (
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// SignalInput is a request to score already-known signals with a named
// strategy. Each strategy reads only the fields it needs.
type SignalInput struct {
	Strategy string `json:"strategy,omitempty"`

	// Weighted
	AgeFactor    *float64 `json:"ageFactor,omitempty"`
	ResponseRate *float64 `json:"responseRate,omitempty"`
	GhostSignal  *float64 `json:"ghostSignal,omitempty"`

	// Categorical
	RecruiterActivity  string `json:"recruiterActivity,omitempty"`
	RepostFrequency    string `json:"repostFrequency,omitempty"`
	CommunitySentiment string `json:"communitySentiment,omitempty"`

	// PostedDate feeds the categorical age rule, and the weighted age factor
	// when AgeFactor is not given.
	PostedDate string `json:"postedDate,omitempty"`
}

// ScoreSignals resolves in.Strategy (or fallback when empty) and scores in.
func ScoreSignals(in SignalInput, fallback string, now time.Time) (domain.TruthScoreResult, error) {
	name := in.Strategy
	if name == "" {
		name = fallback
	}
	strategy, err := domain.StrategyFor(name)
	if err != nil {
		return domain.TruthScoreResult{}, err
	}

	var input domain.ScoreInput
	switch strategy.Variant() {
	case domain.VariantWeighted:
		w := domain.WeightedInput{
			AgeFactor:    in.AgeFactor,
			ResponseRate: in.ResponseRate,
			GhostSignal:  in.GhostSignal,
		}
		if w.AgeFactor == nil && in.PostedDate != "" {
			age := domain.AgeFactorFor(in.PostedDate, now)
			w.AgeFactor = &age
		}
		input.Weighted = &w
	case domain.VariantCategorical:
		sig, err := domain.ParseGhostSignal(in.RecruiterActivity, in.RepostFrequency, in.CommunitySentiment)
		if err != nil {
			return domain.TruthScoreResult{}, err
		}
		input.Categorical = &domain.CategoricalInput{Signal: sig, PostedDate: in.PostedDate}
	}

	return strategy.Score(input, now)
}
