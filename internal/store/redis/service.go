package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultScoreTTL is the default TTL for cached Truth Scores (24 hours)
	DefaultScoreTTL = 24 * time.Hour
)

// ErrUnavailable is returned by a Store built without a client.
var ErrUnavailable = errors.New("redis unavailable")

// Store handles Redis operations for scores, ledgers and profiles
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store. A nil client yields a store whose
// methods all fail with ErrUnavailable.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.client.Ping(ctx).Err()
}

func (s *Store) ready() error {
	if s == nil || s.client == nil {
		return ErrUnavailable
	}
	return nil
}
