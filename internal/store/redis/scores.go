package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// CacheScore stores a computed score under its job URL
func (s *Store) CacheScore(ctx context.Context, snap domain.ScoreSnapshot, ttl time.Duration) error {
	if err := s.ready(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = DefaultScoreTTL
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}
	if err := s.client.Set(ctx, ScoreKey(snap.URL), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache score: %w", err)
	}
	return nil
}

// GetCachedScore retrieves a cached score. A miss returns (nil, nil).
func (s *Store) GetCachedScore(ctx context.Context, jobURL string) (*domain.ScoreSnapshot, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, ScoreKey(jobURL)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached score: %w", err)
	}

	var snap domain.ScoreSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached score: %w", err)
	}
	return &snap, nil
}

// InvalidateScore drops the cached score of jobURL so the next request
// recomputes it. Deleting a missing key is not an error.
func (s *Store) InvalidateScore(ctx context.Context, jobURL string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.client.Del(ctx, ScoreKey(jobURL)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate score: %w", err)
	}
	return nil
}
