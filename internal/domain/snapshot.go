package domain

import "time"

// ScoreSnapshot is a computed weighted Truth Score kept for reuse, keyed by
// the posting URL.
type ScoreSnapshot struct {
	URL          string    `json:"url"`
	Company      string    `json:"company"`
	Title        string    `json:"title"`
	TruthScore   int       `json:"truthScore"`
	GhostRisk    GhostRisk `json:"ghostRisk"`
	AgeFactor    float64   `json:"ageFactor"`
	ResponseRate float64   `json:"responseRate"`
	GhostSignal  float64   `json:"ghostSignal"`
	CalculatedAt time.Time `json:"calculatedAt"`
}
