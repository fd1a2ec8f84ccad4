package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

// SaveEntry stores one tracked application in its owner's ledger
func (s *Store) SaveEntry(ctx context.Context, userID string, entry domain.TrackedApplication) error {
	return s.SaveEntriesMany(ctx, userID, []domain.TrackedApplication{entry})
}

// SaveEntriesMany stores several entries of one ledger (bulk operation)
func (s *Store) SaveEntriesMany(ctx context.Context, userID string, entries []domain.TrackedApplication) error {
	if err := s.ready(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	fields := make(map[string]any, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal entry %s: %w", e.ID, err)
		}
		fields[e.ID] = data
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, LedgerKey(userID), fields)
	pipe.SAdd(ctx, LedgerUsersKey(), userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save ledger entries: %w", err)
	}
	return nil
}

// DeleteEntry removes one entry from a ledger
func (s *Store) DeleteEntry(ctx context.Context, userID, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.client.HDel(ctx, LedgerKey(userID), id).Err(); err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}
	return nil
}

// GetLedger retrieves all entries of one user
func (s *Store) GetLedger(ctx context.Context, userID string) ([]domain.TrackedApplication, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	raw, err := s.client.HGetAll(ctx, LedgerKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	entries := make([]domain.TrackedApplication, 0, len(raw))
	for _, data := range raw {
		var e domain.TrackedApplication
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			// Skip entries that couldn't be decoded
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// GetAllLedgers retrieves every ledger, keyed by user ID
func (s *Store) GetAllLedgers(ctx context.Context) (map[string][]domain.TrackedApplication, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	users, err := s.client.SMembers(ctx, LedgerUsersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger users: %w", err)
	}

	out := make(map[string][]domain.TrackedApplication, len(users))
	for _, u := range users {
		entries, err := s.GetLedger(ctx, u)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			out[u] = entries
		}
	}
	return out, nil
}
