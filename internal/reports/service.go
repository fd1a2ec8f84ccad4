// Package reports ingests community ghosting reports.
package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/profile"
	"github.com/MrSnakeDoc/rolewithai/internal/validation"
)

// Acknowledgement messages.
const (
	ThanksMessage   = "Thank you for helping the community! +10 Impact Points"
	DegradedMessage = "Thank you for your report!"
)

// TrendWindow is the period compared by Trend.
const TrendWindow = 7 * 24 * time.Hour

var errNoStore = errors.New("report store not configured")

// Store persists reports.
type Store interface {
	InsertReport(ctx context.Context, r domain.GhostingReport) error
	GhostingTrend(ctx context.Context, now time.Time, window time.Duration) (float64, error)
}

// ScoreInvalidator drops a cached Truth Score so the next request for the
// posting sees the report.
type ScoreInvalidator interface {
	InvalidateScore(ctx context.Context, jobURL string) error
}

// Awarder credits impact points to a user.
type Awarder interface {
	Award(ctx context.Context, userID string, points int) (profile.View, error)
}

// Request is a report submitted by the extension.
type Request struct {
	Company              string `json:"company" validate:"required,max=200"`
	Title                string `json:"title" validate:"max=300"`
	URL                  string `json:"url" validate:"omitempty,url"`
	Platform             string `json:"platform" validate:"max=50"`
	AppliedDate          string `json:"appliedDate"`
	DaysSinceApplication int    `json:"daysSinceApplication" validate:"gte=0"`
	UserID               string `json:"userId,omitempty"`
}

// Ack is returned for every accepted report.
type Ack struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ImpactPoints int    `json:"impactPoints"`
	ReportID     string `json:"reportId,omitempty"`
}

type Service struct {
	store    Store
	awarder  Awarder
	scores   ScoreInvalidator
	logger   logger.Logger
	validate *validation.Validator
	now      func() time.Time
}

// NewService creates a report service. store, awarder and scores may be nil.
func NewService(store Store, awarder Awarder, scores ScoreInvalidator, log logger.Logger) *Service {
	return &Service{
		store:    store,
		awarder:  awarder,
		scores:   scores,
		logger:   log,
		validate: validation.New(),
		now:      time.Now,
	}
}

// Submit records a report and credits the reporter. Storage and award
// failures only change the acknowledgement message.
func (s *Service) Submit(ctx context.Context, req Request) (Ack, error) {
	req.Company = strings.TrimSpace(req.Company)
	if err := s.validate.Struct(req); err != nil {
		return Ack{}, err
	}

	report := domain.GhostingReport{
		ID:                   uuid.NewString(),
		Company:              req.Company,
		JobTitle:             strings.TrimSpace(req.Title),
		JobURL:               strings.TrimSpace(req.URL),
		Platform:             strings.TrimSpace(req.Platform),
		AppliedDate:          req.AppliedDate,
		DaysSinceApplication: req.DaysSinceApplication,
		GotResponse:          false,
		UserID:               strings.TrimSpace(req.UserID),
		ReportedAt:           s.now().UTC(),
	}

	ack := Ack{Success: true, Message: ThanksMessage, ImpactPoints: domain.ReportImpactPoints, ReportID: report.ID}

	if err := s.insert(ctx, report); err != nil {
		s.logger.Warn("failed to store ghosting report",
			logger.String("company", report.Company),
			logger.Error(err))
		ack.Message = DegradedMessage
		ack.ReportID = ""
		return ack, nil
	}

	if report.JobURL != "" && s.scores != nil {
		if err := s.scores.InvalidateScore(ctx, report.JobURL); err != nil {
			s.logger.Warn("failed to invalidate cached score",
				logger.String("url", report.JobURL),
				logger.Error(err))
		}
	}

	if report.UserID != "" && s.awarder != nil {
		if _, err := s.awarder.Award(ctx, report.UserID, domain.ReportImpactPoints); err != nil {
			s.logger.Warn("failed to award impact points",
				logger.String("user_id", report.UserID),
				logger.Error(err))
			ack.Message = DegradedMessage
		}
	}

	s.logger.Info("ghosting report stored",
		logger.String("id", report.ID),
		logger.String("company", report.Company),
		logger.String("platform", report.Platform))
	return ack, nil
}

func (s *Service) insert(ctx context.Context, r domain.GhostingReport) error {
	if s.store == nil {
		return errNoStore
	}
	return s.store.InsertReport(ctx, r)
}

// Trend is the change in ghosting reports over the last TrendWindow, in
// percent. It is 0 when no store is configured or the query fails.
func (s *Service) Trend(ctx context.Context) float64 {
	if s.store == nil {
		return 0
	}
	v, err := s.store.GhostingTrend(ctx, s.now(), TrendWindow)
	if err != nil {
		s.logger.Warn("failed to compute ghosting trend", logger.Error(err))
		return 0
	}
	return v
}
