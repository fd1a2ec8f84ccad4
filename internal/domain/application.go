package domain

import (
	"math"
	"time"
)

// MaxStaleDays is the inactivity assigned to an entry whose dates cannot be
// read. It exceeds every threshold of the priority and status rules.
const MaxStaleDays = math.MaxInt32

// Status is the lifecycle state of a tracked application.
type Status string

const (
	StatusApplied   Status = "applied"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusGhosted   Status = "ghosted"
	StatusArchived  Status = "archived"
)

// ParseStatus validates a status string (any case).
func ParseStatus(s string) (Status, error) {
	switch st := Status(normalize(s)); st {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected, StatusGhosted, StatusArchived:
		return st, nil
	}
	return "", newValidationError("status", s, "must be one of applied, interview, offer, rejected, ghosted, archived")
}

// Closed reports whether the status ends the application's active life.
func (s Status) Closed() bool {
	return s == StatusGhosted || s == StatusArchived
}

// Priority is how much attention a tracked application deserves.
type Priority string

const (
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
	PriorityArchived Priority = "archived"
)

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(normalize(s)); p {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityArchived:
		return p, nil
	}
	return "", newValidationError("priority", s, "must be one of high, medium, low, archived")
}

// rank orders priorities from most to least attention.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// AtMost returns the lower of p and ceiling.
func (p Priority) AtMost(ceiling Priority) Priority {
	if p.rank() >= ceiling.rank() {
		return p
	}
	return ceiling
}

// TrackedApplication is one job the user applied to, followed over time.
//
// Date and LastActivity are kept as supplied so a malformed value survives
// storage and is handled as maximally stale instead of being rejected.
type TrackedApplication struct {
	ID           string    `json:"id" yaml:"id"`
	Role         string    `json:"role" yaml:"role"`
	Company      string    `json:"company" yaml:"company"`
	URL          string    `json:"url,omitempty" yaml:"url,omitempty"`
	Status       Status    `json:"status" yaml:"status"`
	Date         string    `json:"date" yaml:"date"`
	LastActivity string    `json:"lastActivity,omitempty" yaml:"last_activity,omitempty"`
	Priority     Priority  `json:"priority" yaml:"priority"`
	GhostRisk    GhostRisk `json:"ghostRisk,omitempty" yaml:"ghost_risk,omitempty"`
	// TruthScore is the score recorded when the user applied.
	TruthScore *int   `json:"truthScore,omitempty" yaml:"truth_score,omitempty"`
	Note       string `json:"note" yaml:"note,omitempty"`

	// DaysSinceActivity is derived on every automation pass.
	DaysSinceActivity int `json:"daysSinceActivity" yaml:"-"`
}

// ReferenceDate is LastActivity when set, otherwise Date.
func (a TrackedApplication) ReferenceDate() string {
	if a.LastActivity != "" {
		return a.LastActivity
	}
	return a.Date
}

// Clone returns a copy that shares no pointers with a.
func (a TrackedApplication) Clone() TrackedApplication {
	c := a
	if a.TruthScore != nil {
		v := *a.TruthScore
		c.TruthScore = &v
	}
	return c
}

// DaysSince returns max(0, now-ref) in whole days. Empty or malformed
// references yield MaxStaleDays.
func DaysSince(ref string, now time.Time) int {
	t, ok := ParseTimestamp(ref)
	if !ok {
		return MaxStaleDays
	}
	d := now.Sub(t)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
