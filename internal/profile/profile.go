// Package profile owns per-user state: impact points and shorted companies.
package profile

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

// Store is the only way profile state is read or written.
type Store interface {
	Get(ctx context.Context, userID string) (domain.UserProfile, error)
	Set(ctx context.Context, p domain.UserProfile) error
}

// View is a profile plus its derived impact level.
type View struct {
	domain.UserProfile
	Level             domain.ImpactLevel `json:"level"`
	PointsToNextLevel int                `json:"pointsToNextLevel"`
	Progress          float64            `json:"progress"`
}

// NewView derives the level fields of p.
func NewView(p domain.UserProfile) View {
	if p.ShortedCompanies == nil {
		p.ShortedCompanies = []string{}
	}
	return View{
		UserProfile:       p,
		Level:             domain.ImpactLevelFor(p.ImpactPoints),
		PointsToNextLevel: domain.PointsToNextLevel(p.ImpactPoints),
		Progress:          domain.ProgressToNextLevel(p.ImpactPoints),
	}
}

// Service serializes read-modify-write cycles on profiles.
type Service struct {
	store  Store
	logger logger.Logger
	now    func() time.Time

	mu sync.Mutex
}

func NewService(store Store, log logger.Logger) *Service {
	return &Service{store: store, logger: log, now: time.Now}
}

// Get returns the profile of userID.
func (s *Service) Get(ctx context.Context, userID string) (View, error) {
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return View{}, fmt.Errorf("failed to load profile: %w", err)
	}
	p.UserID = userID
	return NewView(p), nil
}

// Award adds points to userID's impact score.
func (s *Service) Award(ctx context.Context, userID string, points int) (View, error) {
	v, err := s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		p.ImpactPoints += points
		return p
	})
	if err != nil {
		return View{}, err
	}
	s.logger.Info("impact points awarded",
		logger.String("user_id", userID),
		logger.Int("points", points),
		logger.Int("total", v.ImpactPoints),
		logger.String("level", v.Level.Name))
	return v, nil
}

// Short adds company to the user's shorted list.
func (s *Service) Short(ctx context.Context, userID, company string) (View, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return View{}, &domain.ValidationError{Field: "company", Message: "is required"}
	}
	return s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		return p.WithShort(company)
	})
}

// Unshort removes company from the user's shorted list.
func (s *Service) Unshort(ctx context.Context, userID, company string) (View, error) {
	return s.update(ctx, userID, func(p domain.UserProfile) domain.UserProfile {
		return p.WithoutShort(company)
	})
}

func (s *Service) update(ctx context.Context, userID string, fn func(domain.UserProfile) domain.UserProfile) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return View{}, fmt.Errorf("failed to load profile: %w", err)
	}
	p.UserID = userID
	p = fn(p)
	p.UpdatedAt = s.now().UTC()

	if err := s.store.Set(ctx, p); err != nil {
		return View{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return NewView(p), nil
}
