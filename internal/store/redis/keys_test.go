package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"score", ScoreKey(" https://jobs.example.com/1 "), "rwai:score:https://jobs.example.com/1"},
		{"ledger", LedgerKey("u1"), "rwai:ledger:u1"},
		{"users", LedgerUsersKey(), "rwai:ledgers:users"},
		{"profile", ProfileKey("u1"), "rwai:profile:u1"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s key = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestStoreWithoutClient(t *testing.T) {
	s := NewStore(nil)
	ctx := context.Background()

	if err := s.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Ping() = %v, want ErrUnavailable", err)
	}
	if _, err := s.GetCachedScore(ctx, "u"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("GetCachedScore() = %v, want ErrUnavailable", err)
	}
	if err := s.InvalidateScore(ctx, "u"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("InvalidateScore() = %v, want ErrUnavailable", err)
	}
	if err := s.SaveEntry(ctx, "u1", domain.TrackedApplication{ID: "a"}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("SaveEntry() = %v, want ErrUnavailable", err)
	}
	if _, err := NewProfileStore(s).Get(ctx, "u1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("ProfileStore.Get() = %v, want ErrUnavailable", err)
	}
}
