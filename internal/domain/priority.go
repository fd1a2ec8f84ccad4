package domain

const (
	// Inactivity thresholds in days
	StaleAfterDays   = 7
	LowAfterDays     = 14
	GhostedAfterDays = 21 // inclusive: an applied entry idle this long is ghosted
	ArchiveAfterDays = 28

	// ScoreDropThreshold is the fall in Truth Score, strictly exceeded, that
	// demotes an entry to low priority.
	ScoreDropThreshold = 20
)

// DerivePriority applies the priority rules in order; the first match wins.
//
//  1. high ghost risk and idle > 7 days  -> archived
//  2. idle > 28 days                     -> archived
//  3. idle > 14 days                     -> low
//  4. high ghost risk                    -> low
//  5. idle > 7 days                      -> medium
//  6. otherwise                          -> high
func DerivePriority(daysSinceActivity int, risk GhostRisk) Priority {
	switch {
	case risk == RiskHigh && daysSinceActivity > StaleAfterDays:
		return PriorityArchived
	case daysSinceActivity > ArchiveAfterDays:
		return PriorityArchived
	case daysSinceActivity > LowAfterDays:
		return PriorityLow
	case risk == RiskHigh:
		return PriorityLow
	case daysSinceActivity > StaleAfterDays:
		return PriorityMedium
	default:
		return PriorityHigh
	}
}
