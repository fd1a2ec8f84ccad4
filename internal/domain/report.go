package domain

import "time"

// ReportImpactPoints is awarded for every community ghosting report.
const ReportImpactPoints = 10

// GhostingReport is one community report that a company never answered.
type GhostingReport struct {
	ID                   string    `json:"id"`
	Company              string    `json:"company"`
	JobTitle             string    `json:"jobTitle"`
	JobURL               string    `json:"jobUrl"`
	Platform             string    `json:"platform"`
	AppliedDate          string    `json:"appliedDate"`
	DaysSinceApplication int       `json:"daysSinceApplication"`
	GotResponse          bool      `json:"gotResponse"`
	UserID               string    `json:"userId,omitempty"`
	ReportedAt           time.Time `json:"reportedAt"`
}
