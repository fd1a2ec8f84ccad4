package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// GetProfile loads a user profile. An unknown user gets an empty profile.
func (s *Store) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	if err := s.ready(); err != nil {
		return domain.UserProfile{}, err
	}

	data, err := s.client.Get(ctx, ProfileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.UserProfile{UserID: userID, ShortedCompanies: []string{}}, nil
		}
		return domain.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	var p domain.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.UserProfile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return p, nil
}

// SetProfile stores a user profile without expiry
func (s *Store) SetProfile(ctx context.Context, p domain.UserProfile) error {
	if err := s.ready(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := s.client.Set(ctx, ProfileKey(p.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// ProfileStore adapts Store to the Get/Set profile store contract.
type ProfileStore struct {
	store *Store
}

func NewProfileStore(store *Store) *ProfileStore {
	return &ProfileStore{store: store}
}

func (p *ProfileStore) Get(ctx context.Context, userID string) (domain.UserProfile, error) {
	return p.store.GetProfile(ctx, userID)
}

func (p *ProfileStore) Set(ctx context.Context, profile domain.UserProfile) error {
	return p.store.SetProfile(ctx, profile)
}
