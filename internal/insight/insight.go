// Package insight produces the short human-readable advice attached to a
// Truth Score. An LLM is used when configured; fixed templates otherwise.
package insight

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// Request is everything the generator may mention about a posting.
type Request struct {
	Title        string
	Company      string
	Description  string
	TruthScore   int
	GhostRisk    domain.GhostRisk
	AgeFactor    float64
	ResponseRate float64
	GhostSignal  float64
}

// Insights is the advice pair returned to the client.
type Insights struct {
	Message        string `json:"message" validate:"required"`
	DetailedAdvice string `json:"detailedAdvice" validate:"required"`
}

// Generator turns a scored posting into advice.
type Generator interface {
	Generate(ctx context.Context, req Request) (Insights, error)
}

// Fallback returns the template advice for req. It never fails.
func Fallback(req Request) Insights {
	switch {
	case req.TruthScore >= domain.WeightedLowRiskMin:
		return Insights{
			Message:        fmt.Sprintf("This role is a high-intent match. %s has a strong track record of responding to candidates.", req.Company),
			DetailedAdvice: fmt.Sprintf("We should definitely apply here. %s has been actively hiring and responding to candidates. The role was posted recently, and community data shows positive engagement. Your skills align well with what they're looking for.", req.Company),
		}
	case req.TruthScore >= domain.WeightedMediumRiskMin:
		return Insights{
			Message:        fmt.Sprintf("Moderate match. %s has been somewhat responsive, but proceed with caution.", req.Company),
			DetailedAdvice: fmt.Sprintf("This role matches your experience, but there's some risk. %s has been slow to respond lately. I'd recommend applying, but also keep other high-intent options open.", req.Company),
		}
	}
	return Insights{
		Message:        "High ghost risk detected. This posting has been up for a while with low engagement.",
		DetailedAdvice: fmt.Sprintf("Honestly, this feels like a ghost job. %s has reposted this multiple times without hiring, and community reports show low response rates. Let's focus your energy on higher-intent opportunities where you'll actually get a response.", req.Company),
	}
}

// FallbackGenerator serves the templates through the Generator interface.
type FallbackGenerator struct{}

func (FallbackGenerator) Generate(_ context.Context, req Request) (Insights, error) {
	return Fallback(req), nil
}
