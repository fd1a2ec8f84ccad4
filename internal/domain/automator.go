package domain

import "time"

// AutomationResult is the outcome of one Automate call.
type AutomationResult struct {
	Entry           TrackedApplication `json:"entry"`
	PriorityChanged bool               `json:"priorityChanged"`
	StatusChanged   bool               `json:"statusChanged"`
	NoteRegenerated bool               `json:"noteRegenerated"`
}

// Changed reports whether any stored field moved.
func (r AutomationResult) Changed() bool {
	return r.PriorityChanged || r.StatusChanged
}

// Automate recomputes status, priority and note of one entry.
//
// It is the single place these rules live: saves, manual status changes and
// the periodic sweep all call it. entry is never modified. For a fixed now
// and currentScore the function is idempotent.
func Automate(entry TrackedApplication, currentScore *int, now time.Time) AutomationResult {
	out := entry.Clone()
	days := DaysSince(entry.ReferenceDate(), now)
	out.DaysSinceActivity = days

	if out.Status == StatusApplied && days >= GhostedAfterDays {
		out.Status = StatusGhosted
	}

	priority := DerivePriority(days, out.GhostRisk)
	switch {
	case out.Status.Closed():
		priority = PriorityArchived
	case scoreDropped(entry.TruthScore, currentScore):
		// A deterioration only ever lowers attention.
		priority = priority.AtMost(PriorityLow)
	}
	out.Priority = priority

	res := AutomationResult{
		StatusChanged:   out.Status != entry.Status,
		PriorityChanged: out.Priority != entry.Priority,
	}
	if res.Changed() {
		out.Note = NoteFor(out, days)
		res.NoteRegenerated = true
	}
	res.Entry = out
	return res
}

// AutomateAll runs Automate on every entry. scores maps entry ID to the
// latest Truth Score; entries without one are automated on time alone.
// Entries are independent, so the output order mirrors the input.
func AutomateAll(entries []TrackedApplication, scores map[string]int, now time.Time) []TrackedApplication {
	out := make([]TrackedApplication, len(entries))
	for i, e := range entries {
		var current *int
		if s, ok := scores[e.ID]; ok {
			current = &s
		}
		out[i] = Automate(e, current, now).Entry
	}
	return out
}

func scoreDropped(recorded, current *int) bool {
	if recorded == nil || current == nil {
		return false
	}
	return *recorded-*current > ScoreDropThreshold
}
