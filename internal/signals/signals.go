// Package signals gathers the external inputs of the weighted Truth Score:
// the community response rate and the web ghost signal for a company.
package signals

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

const (
	// ResponseWindow is how far back community reports count.
	ResponseWindow = 30 * 24 * time.Hour

	// PointsPerMention is added to the ghost signal for each keyword hit.
	PointsPerMention = 10
	// MaxGhostSignal caps the ghost signal.
	MaxGhostSignal = 100
)

// GhostKeywords are counted once per search result that contains them.
var GhostKeywords = []string{"reposted", "evergreen", "no contact", "ghost job", "fake posting"}

// ReportStats answers how many reports exist for a company and how many of
// them got a response.
type ReportStats interface {
	ResponseStats(ctx context.Context, company string, since time.Time) (responses, total int, err error)
}

// Service looks up both signals. Either collaborator may be nil, in which
// case the matching signal is always its default.
type Service struct {
	reports ReportStats
	search  Searcher
	logger  logger.Logger
	now     func() time.Time
}

func NewService(reports ReportStats, search Searcher, log logger.Logger) *Service {
	return &Service{reports: reports, search: search, logger: log, now: time.Now}
}

// ResponseRate returns the percentage of recent reports about company that
// got a response, or domain.DefaultResponseRate when there are none.
func (s *Service) ResponseRate(ctx context.Context, company string) float64 {
	if s.reports == nil {
		return domain.DefaultResponseRate
	}

	responses, total, err := s.reports.ResponseStats(ctx, company, s.now().Add(-ResponseWindow))
	if err != nil {
		s.logger.Warn("response rate lookup failed, using default",
			logger.String("company", company),
			logger.Error(err))
		return domain.DefaultResponseRate
	}
	if total == 0 {
		return domain.DefaultResponseRate
	}
	return math.Round(float64(responses) / float64(total) * 100)
}

// GhostSignal searches Reddit and Glassdoor for ghosting chatter about
// company. A failed search yields domain.DefaultGhostSignal.
func (s *Service) GhostSignal(ctx context.Context, company string) float64 {
	if s.search == nil {
		return domain.DefaultGhostSignal
	}

	var all []SearchResult
	for _, q := range GhostQueries(company) {
		res, err := s.search.Search(ctx, q)
		if err != nil {
			s.logger.Warn("ghost signal search failed, using default",
				logger.String("company", company),
				logger.String("query", q),
				logger.Error(err))
			return domain.DefaultGhostSignal
		}
		all = append(all, res...)
	}

	mentions := CountGhostMentions(all)
	s.logger.Debug("ghost signal computed",
		logger.String("company", company),
		logger.Int("results", len(all)),
		logger.Int("mentions", mentions))
	return GhostSignalFromMentions(mentions)
}

// GhostQueries returns the two site-restricted searches run for company.
func GhostQueries(company string) []string {
	return []string{
		fmt.Sprintf(`site:reddit.com "%s" ghosting hiring`, company),
		fmt.Sprintf(`site:glassdoor.com "%s" "not hiring" "fake jobs"`, company),
	}
}

// CountGhostMentions counts (result, keyword) pairs where the keyword appears
// in the result title or content.
func CountGhostMentions(results []SearchResult) int {
	n := 0
	for _, r := range results {
		text := strings.ToLower(r.Title + " " + r.Content)
		for _, kw := range GhostKeywords {
			if strings.Contains(text, kw) {
				n++
			}
		}
	}
	return n
}

// GhostSignalFromMentions converts a mention count to a [0,100] signal.
func GhostSignalFromMentions(mentions int) float64 {
	return float64(min(MaxGhostSignal, mentions*PointsPerMention))
}
