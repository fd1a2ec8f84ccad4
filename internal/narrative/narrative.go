// Package narrative renders the assistant's supportive dialogue for scores,
// signals and the daily brief. Everything here is pure text shaping.
package narrative

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// TimeOfDay selects the greeting register of the brief.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// TimeOfDayAt buckets t by its local hour.
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h < 12:
		return Morning
	case h < 17:
		return Afternoon
	default:
		return Evening
	}
}

// Greeting is "Good morning", "Good afternoon" or "Good evening".
func (t TimeOfDay) Greeting() string {
	return "Good " + string(t)
}

// MarketVitals is the input of the daily brief.
type MarketVitals struct {
	HiringVelocity float64 `json:"hiringVelocity"` // % change in hiring
	GhostingRate   float64 `json:"ghostingRate"`   // % change in ghosting incidents
	ImpactPoints   int     `json:"impactPoints"`
}

// JobDialogue comments on a scored posting.
func JobDialogue(score int, sig domain.GhostSignal, company string) string {
	if score >= 80 {
		return fmt.Sprintf("This looks promising. %s has been actively engaging with candidates, and the posting is fresh. Your skills align well here. I'd recommend prioritizing this one.", company)
	}

	if score >= 50 {
		if sig.RepostFrequency == domain.RepostHigh {
			return fmt.Sprintf("There's some risk here. %s has reposted this multiple times. It's worth applying, but let's keep our expectations realistic. I'm tracking this for you.", company)
		}
		return fmt.Sprintf("This is a solid opportunity. %s has moderate activity, and while the signals aren't perfect, it's worth your time. I'll keep an eye on this one.", company)
	}

	switch {
	case sig.CommunitySentiment == domain.SentimentNegative:
		return fmt.Sprintf("I'm seeing red flags here. The community has reported ghosting concerns with %s, and the posting patterns suggest this might be an evergreen role. Let's focus your energy on higher-intent opportunities where you'll actually get a response.", company)
	case sig.RepostFrequency == domain.RepostHigh:
		return fmt.Sprintf("This posting has been reposted multiple times without hiring. That's a pattern I don't like. %s may be collecting resumes rather than actively hiring. Your time is better spent elsewhere.", company)
	}
	return fmt.Sprintf("The signals here are weak. Low recruiter activity and stale posting suggest this isn't a priority for %s right now. I'd recommend skipping this and focusing on roles where you'll get a real response.", company)
}

// WhyScoreDialogue lists the signals that drove a score.
func WhyScoreDialogue(sig domain.GhostSignal, daysOld int) string {
	var parts []string

	switch sig.RecruiterActivity {
	case domain.RecruiterHigh:
		parts = append(parts, "Strong recruiter engagement")
	case domain.RecruiterNone:
		parts = append(parts, "No visible recruiter activity")
	}

	if sig.RepostFrequency == domain.RepostHigh {
		parts = append(parts, "frequent reposting suggests this may be an evergreen role")
	}

	switch {
	case daysOld > 30:
		parts = append(parts, fmt.Sprintf("posted %d days ago, may be stale", daysOld))
	case daysOld < 7:
		parts = append(parts, fmt.Sprintf("fresh posting (%d days old)", daysOld))
	}

	if sig.CommunitySentiment == domain.SentimentNegative {
		parts = append(parts, "community reports indicate ghosting concerns")
	}

	if len(parts) == 0 {
		return "Mixed signals across indicators. Proceed with moderate expectations."
	}
	return "Score based on: " + strings.Join(parts, ", ") + "."
}

// MorningBrief is the two-sentence greeting shown at the top of the dashboard.
func MorningBrief(v MarketVitals, tod TimeOfDay) string {
	dir, abs := direction(v.HiringVelocity)

	switch tod {
	case Morning:
		switch {
		case v.HiringVelocity > 0 && v.GhostingRate < 5:
			return fmt.Sprintf("Good morning. The market is showing positive momentum. Hiring is up %s%%, and ghosting is relatively low. It's a good day to focus on high-intent matches, and I've filtered out the noise for you.", abs)
		case v.HiringVelocity < 0:
			return fmt.Sprintf("Good morning. The market is a bit quiet this week (hiring down %s%%), but that's okay. It's a great time to focus on your studies while I keep watch for high-quality opportunities.", abs)
		}
		return fmt.Sprintf("Good morning. Hiring is %s %s%%, but ghosting is still high (+%s%%). I've filtered out the fake ones so you can focus on what matters.", dir, abs, formatPct(v.GhostingRate))
	case Afternoon:
		return fmt.Sprintf("Good afternoon. I've been tracking the market while you've been working. Hiring is %s %s%%, and I've identified %d high-intent matches worth your attention.", dir, abs, v.ImpactPoints)
	}
	return fmt.Sprintf("Good evening. You've had a long day at work, so I've narrowed the noise down to the essential updates. Hiring is %s %s%%, and I'm filtering out the ghost jobs so you can focus on your studies.", dir, abs)
}

func direction(velocity float64) (string, string) {
	dir := "down"
	if velocity > 0 {
		dir = "up"
	}
	return dir, formatPct(math.Abs(velocity))
}

// formatPct drops a trailing ".0" so 4 renders as "4" and 4.5 as "4.5".
func formatPct(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}
