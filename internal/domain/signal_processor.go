package domain

// Tone is the semantic color category of a signal dimension. Mapping a tone
// to an actual color is left to the presentation layer.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneMuted    Tone = "muted"
)

// DimensionView is the display metadata for one signal dimension.
type DimensionView struct {
	Level string `json:"level"`
	Tone  Tone   `json:"tone"`
	Label string `json:"label"`
}

// SignalVisualization is the display-only breakdown of a GhostSignal.
// OverallScore is not a Truth Score and must not drive decisions.
type SignalVisualization struct {
	RecruiterActivity  DimensionView `json:"recruiterActivity"`
	RepostFrequency    DimensionView `json:"repostFrequency"`
	CommunitySentiment DimensionView `json:"communitySentiment"`
	OverallScore       int           `json:"overallScore"`
}

// ProcessGhostSignal builds the visualization for a validated signal.
func ProcessGhostSignal(sig GhostSignal) SignalVisualization {
	return SignalVisualization{
		RecruiterActivity: DimensionView{
			Level: string(sig.RecruiterActivity.Level()),
			Tone:  toneIf(sig.RecruiterActivity == RecruiterHigh),
			Label: "Recruiter Activity: " + string(sig.RecruiterActivity),
		},
		RepostFrequency: DimensionView{
			Level: string(sig.RepostFrequency.Level()),
			Tone:  toneIf(sig.RepostFrequency == RepostNone),
			Label: "Repost Frequency: " + string(sig.RepostFrequency),
		},
		CommunitySentiment: DimensionView{
			Level: normalize(string(sig.CommunitySentiment)),
			Tone:  toneIf(sig.CommunitySentiment == SentimentPositive),
			Label: "Community Sentiment: " + string(sig.CommunitySentiment),
		},
		OverallScore: VisualizationScore(sig),
	}
}

// VisualizationScore is the 0-100 display score of a signal.
func VisualizationScore(sig GhostSignal) int {
	score := 50

	switch sig.RecruiterActivity {
	case RecruiterHigh:
		score += 30
	case RecruiterModerate:
		score += 15
	default:
		score -= 20
	}

	switch sig.RepostFrequency {
	case RepostHigh:
		score -= 25
	case RepostLow:
		score += 5
	default:
		score += 20
	}

	switch sig.CommunitySentiment {
	case SentimentPositive:
		score += 20
	case SentimentNegative:
		score -= 25
	}

	return clampInt(score, 0, 100)
}

func toneIf(good bool) Tone {
	if good {
		return TonePositive
	}
	return ToneMuted
}
