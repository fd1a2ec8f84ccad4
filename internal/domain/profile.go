package domain

import (
	"slices"
	"strings"
	"time"
)

// UserProfile is the per-user state that used to live in ambient client
// storage. It is read and written only through a profile store.
type UserProfile struct {
	UserID           string    `json:"userId"`
	ImpactPoints     int       `json:"impactPoints"`
	ShortedCompanies []string  `json:"shortedCompanies"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// HasShorted reports whether company is on the user's shorted list (case-insensitive).
func (p UserProfile) HasShorted(company string) bool {
	return slices.IndexFunc(p.ShortedCompanies, func(c string) bool {
		return strings.EqualFold(c, company)
	}) >= 0
}

// WithShort returns a copy with company added once.
func (p UserProfile) WithShort(company string) UserProfile {
	company = strings.TrimSpace(company)
	if company == "" || p.HasShorted(company) {
		return p
	}
	p.ShortedCompanies = append(slices.Clone(p.ShortedCompanies), company)
	return p
}

// WithoutShort returns a copy with company removed.
func (p UserProfile) WithoutShort(company string) UserProfile {
	p.ShortedCompanies = slices.DeleteFunc(slices.Clone(p.ShortedCompanies), func(c string) bool {
		return strings.EqualFold(c, company)
	})
	return p
}

// ─────────────────────────────────────────────────────────────────
// Impact levels
// ─────────────────────────────────────────────────────────────────

type ImpactLevel struct {
	Name        string `json:"name"`
	MinPoints   int    `json:"minPoints"`
	Description string `json:"description"`
}

// ImpactLevels is ordered by MinPoints.
var ImpactLevels = []ImpactLevel{
	{Name: "Intern", MinPoints: 0, Description: "Just getting started"},
	{Name: "Junior Contributor", MinPoints: 50, Description: "Helping others navigate"},
	{Name: "Senior Helper", MinPoints: 150, Description: "Making a real impact"},
	{Name: "Lead Navigator", MinPoints: 300, Description: "Guiding the community"},
	{Name: "Market Oracle", MinPoints: 500, Description: "The community trusts you"},
}

// ImpactLevelFor returns the highest level reached with points.
func ImpactLevelFor(points int) ImpactLevel {
	for i := len(ImpactLevels) - 1; i >= 0; i-- {
		if points >= ImpactLevels[i].MinPoints {
			return ImpactLevels[i]
		}
	}
	return ImpactLevels[0]
}

func nextLevel(points int) (ImpactLevel, ImpactLevel, bool) {
	cur := ImpactLevelFor(points)
	for _, l := range ImpactLevels {
		if l.MinPoints > cur.MinPoints {
			return cur, l, true
		}
	}
	return cur, ImpactLevel{}, false
}

// PointsToNextLevel is 0 at the top level.
func PointsToNextLevel(points int) int {
	_, next, ok := nextLevel(points)
	if !ok {
		return 0
	}
	return next.MinPoints - points
}

// ProgressToNextLevel returns the percentage [0,100] covered between the
// current level and the next one.
func ProgressToNextLevel(points int) float64 {
	cur, next, ok := nextLevel(points)
	if !ok {
		return 100
	}
	p := float64(points-cur.MinPoints) / float64(next.MinPoints-cur.MinPoints) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
