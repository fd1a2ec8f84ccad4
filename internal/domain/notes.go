package domain

import "fmt"

const defaultNote = "I'm keeping an eye on this application. I'll update you if anything changes."

// NoteFor renders the explanatory note for an entry in its current state.
// The existing note is kept when no template applies.
func NoteFor(entry TrackedApplication, daysSinceActivity int) string {
	switch {
	case entry.Status == StatusGhosted:
		return fmt.Sprintf("I've archived this so you don't have to think about it anymore. %s hasn't responded in %s. This is on them, not you.",
			entry.Company, describeDays(daysSinceActivity))
	case entry.Status == StatusArchived:
		return "This one is archived. Your attention is better spent on the applications still in motion."
	case entry.Priority == PriorityLow && daysSinceActivity > LowAfterDays:
		return "I'm watching this so you don't have to. I've moved it to 'low priority' for you. Don't let their silence occupy your headspace."
	case entry.Status == StatusInterview:
		return fmt.Sprintf("Great news, %s is actively engaging. I'm tracking this closely for you.", entry.Company)
	case entry.Status == StatusRejected:
		return fmt.Sprintf("I've closed this chapter for you. %s wasn't the right fit, and that's okay.", entry.Company)
	case entry.Note != "":
		return entry.Note
	default:
		return defaultNote
	}
}

func describeDays(days int) string {
	switch {
	case days >= MaxStaleDays:
		return "a long time"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
