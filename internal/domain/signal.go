package domain

import "strings"

// ─────────────────────────────────────────────────────────────────
// Recruiter activity
//
// Two vocabularies describe the same concept. RecruiterActivity is the
// coarse set used by scoring; ActivityLevel is the finer set used by the
// visualization path. Convert between them with Level and Coarse only.
// ─────────────────────────────────────────────────────────────────

// RecruiterActivity is the coarse recruiter-activity level.
type RecruiterActivity string

const (
	RecruiterNone     RecruiterActivity = "None"
	RecruiterModerate RecruiterActivity = "Moderate"
	RecruiterHigh     RecruiterActivity = "High"
)

// ActivityLevel is the fine-grained level used for display.
type ActivityLevel string

const (
	LevelNone     ActivityLevel = "none"
	LevelLow      ActivityLevel = "low"
	LevelModerate ActivityLevel = "moderate"
	LevelHigh     ActivityLevel = "high"
)

// Level maps a coarse activity onto the fine set.
func (a RecruiterActivity) Level() ActivityLevel {
	switch a {
	case RecruiterHigh:
		return LevelHigh
	case RecruiterModerate:
		return LevelModerate
	default:
		return LevelNone
	}
}

// Coarse maps a fine level back onto the coarse set. "low" has no coarse
// counterpart and collapses to None so a weak signal never earns points.
func (l ActivityLevel) Coarse() RecruiterActivity {
	switch l {
	case LevelHigh:
		return RecruiterHigh
	case LevelModerate:
		return RecruiterModerate
	default:
		return RecruiterNone
	}
}

// ParseRecruiterActivity accepts None, Moderate or High (any case).
// An empty string resolves to None.
func ParseRecruiterActivity(s string) (RecruiterActivity, error) {
	switch normalize(s) {
	case "", "none":
		return RecruiterNone, nil
	case "moderate":
		return RecruiterModerate, nil
	case "high":
		return RecruiterHigh, nil
	}
	return "", newValidationError("recruiterActivity", s, "must be one of None, Moderate, High")
}

// ParseActivityLevel accepts none, low, moderate or high (any case).
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch normalize(s) {
	case "", "none":
		return LevelNone, nil
	case "low":
		return LevelLow, nil
	case "moderate":
		return LevelModerate, nil
	case "high":
		return LevelHigh, nil
	}
	return "", newValidationError("activityLevel", s, "must be one of none, low, moderate, high")
}

// ─────────────────────────────────────────────────────────────────
// Repost frequency
// ─────────────────────────────────────────────────────────────────

type RepostFrequency string

const (
	RepostNone RepostFrequency = "None"
	RepostLow  RepostFrequency = "Low"
	RepostHigh RepostFrequency = "High"
)

// Level returns the display level for a repost frequency.
func (r RepostFrequency) Level() ActivityLevel {
	switch r {
	case RepostHigh:
		return LevelHigh
	case RepostLow:
		return LevelLow
	default:
		return LevelNone
	}
}

func ParseRepostFrequency(s string) (RepostFrequency, error) {
	switch normalize(s) {
	case "", "none":
		return RepostNone, nil
	case "low":
		return RepostLow, nil
	case "high":
		return RepostHigh, nil
	}
	return "", newValidationError("repostFrequency", s, "must be one of None, Low, High")
}

// ─────────────────────────────────────────────────────────────────
// Community sentiment
// ─────────────────────────────────────────────────────────────────

type CommunitySentiment string

const (
	SentimentNegative CommunitySentiment = "Negative"
	SentimentNeutral  CommunitySentiment = "Neutral"
	SentimentPositive CommunitySentiment = "Positive"
)

func ParseCommunitySentiment(s string) (CommunitySentiment, error) {
	switch normalize(s) {
	case "", "neutral":
		return SentimentNeutral, nil
	case "negative":
		return SentimentNegative, nil
	case "positive":
		return SentimentPositive, nil
	}
	return "", newValidationError("communitySentiment", s, "must be one of Negative, Neutral, Positive")
}

// ─────────────────────────────────────────────────────────────────
// GhostSignal
// ─────────────────────────────────────────────────────────────────

// GhostSignal holds the categorical ghosting indicators for one posting.
// Build it with ParseGhostSignal so every field is a member of its enum.
type GhostSignal struct {
	RecruiterActivity  RecruiterActivity  `json:"recruiterActivity"`
	RepostFrequency    RepostFrequency    `json:"repostFrequency"`
	CommunitySentiment CommunitySentiment `json:"communitySentiment"`
}

// ParseGhostSignal validates raw strings into a GhostSignal.
func ParseGhostSignal(recruiter, repost, sentiment string) (GhostSignal, error) {
	ra, err := ParseRecruiterActivity(recruiter)
	if err != nil {
		return GhostSignal{}, err
	}
	rf, err := ParseRepostFrequency(repost)
	if err != nil {
		return GhostSignal{}, err
	}
	cs, err := ParseCommunitySentiment(sentiment)
	if err != nil {
		return GhostSignal{}, err
	}
	return GhostSignal{RecruiterActivity: ra, RepostFrequency: rf, CommunitySentiment: cs}, nil
}

// Validate re-checks a GhostSignal built by hand.
func (g GhostSignal) Validate() error {
	_, err := ParseGhostSignal(string(g.RecruiterActivity), string(g.RepostFrequency), string(g.CommunitySentiment))
	return err
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
