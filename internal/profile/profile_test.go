package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (domain.UserProfile, error) {
	return domain.UserProfile{}, errors.New("down")
}
func (failingStore) Set(context.Context, domain.UserProfile) error { return errors.New("down") }

func TestServiceAward(t *testing.T) {
	svc := NewService(NewMemoryStore(), logger.NewNop())
	ctx := context.Background()

	v, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, v.ImpactPoints)
	assert.Equal(t, "Intern", v.Level.Name)
	assert.NotNil(t, v.ShortedCompanies)

	for range 5 {
		v, err = svc.Award(ctx, "u1", domain.ReportImpactPoints)
		require.NoError(t, err)
	}
	assert.Equal(t, 50, v.ImpactPoints)
	assert.Equal(t, "Junior Contributor", v.Level.Name)
	assert.Equal(t, 100, v.PointsToNextLevel)
	assert.False(t, v.UpdatedAt.IsZero())

	other, err := svc.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, 0, other.ImpactPoints)
}

func TestServiceAwardConcurrent(t *testing.T) {
	svc := NewService(NewMemoryStore(), logger.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Award(ctx, "u1", 10)
		}()
	}
	wg.Wait()

	v, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 500, v.ImpactPoints)
	assert.Equal(t, "Market Oracle", v.Level.Name)
}

func TestServiceShorts(t *testing.T) {
	svc := NewService(NewMemoryStore(), logger.NewNop())
	ctx := context.Background()

	_, err := svc.Short(ctx, "u1", "  ")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	v, err := svc.Short(ctx, "u1", "Acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, v.ShortedCompanies)

	v, err = svc.Short(ctx, "u1", "acme")
	require.NoError(t, err)
	assert.Len(t, v.ShortedCompanies, 1)

	v, err = svc.Unshort(ctx, "u1", "ACME")
	require.NoError(t, err)
	assert.Empty(t, v.ShortedCompanies)
}

func TestServiceStoreFailure(t *testing.T) {
	svc := NewService(failingStore{}, logger.NewNop())
	_, err := svc.Award(context.Background(), "u1", 10)
	require.Error(t, err)
	_, err = svc.Get(context.Background(), "u1")
	require.Error(t, err)
}
