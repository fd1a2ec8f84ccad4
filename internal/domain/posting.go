package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// UnknownAgeDays is the age assigned to a posting whose date is present but
// unreadable. It lands in the stalest bucket of every age rule.
const UnknownAgeDays = 999

// JobPosting is one external job listing. Scores are computed on demand and
// never stored on the posting itself.
type JobPosting struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	PostedDate  string `json:"postedDate,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// AgeDays returns the posting age relative to now. See PostingAgeDays.
func (p JobPosting) AgeDays(now time.Time) (float64, bool) {
	return PostingAgeDays(p.PostedDate, now)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var relativeAgeRe = regexp.MustCompile(`(?i)(\d+)\+?\s*(minute|min|hour|hr|day|week|wk|month|mo)s?`)

// ParseTimestamp parses the absolute date formats accepted across the
// service. ok is false for empty or unreadable input.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PostingAgeDays returns how many days ago a posting went up.
//
// present is false when postedDate is empty. Absolute dates count partial
// days as whole ones; relative text ("3 days ago", "5 hours ago") is
// converted directly. Anything else yields UnknownAgeDays.
func PostingAgeDays(postedDate string, now time.Time) (days float64, present bool) {
	s := strings.TrimSpace(postedDate)
	if s == "" {
		return 0, false
	}

	if t, ok := ParseTimestamp(s); ok {
		d := math.Ceil(now.Sub(t).Hours() / 24)
		if d < 0 {
			d = 0
		}
		return d, true
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "just now"), strings.Contains(lower, "today"), strings.Contains(lower, "just posted"):
		return 0, true
	case strings.Contains(lower, "yesterday"):
		return 1, true
	}

	m := relativeAgeRe.FindStringSubmatch(lower)
	if m == nil {
		return UnknownAgeDays, true
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return UnknownAgeDays, true
	}

	switch m[2] {
	case "minute", "min":
		return 0, true
	case "hour", "hr":
		return float64(n) / 24, true
	case "week", "wk":
		return float64(n * 7), true
	case "month", "mo":
		return float64(n * 30), true
	default:
		return float64(n), true
	}
}
