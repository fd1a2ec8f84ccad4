package profile

import (
	"context"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// MemoryStore keeps profiles in process. Used when Redis is disabled and in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.UserProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]domain.UserProfile)}
}

func (m *MemoryStore) Get(_ context.Context, userID string) (domain.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return domain.UserProfile{UserID: userID, ShortedCompanies: []string{}}, nil
	}
	p.ShortedCompanies = slices.Clone(p.ShortedCompanies)
	return p, nil
}

func (m *MemoryStore) Set(_ context.Context, p domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ShortedCompanies = slices.Clone(p.ShortedCompanies)
	m.profiles[p.UserID] = p
	return nil
}
