package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		current, previous int
		want              float64
	}{
		{0, 0, 0},
		{3, 0, 100},
		{10, 10, 0},
		{15, 10, 50},
		{5, 10, -50},
		{4, 3, 33.3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PercentChange(tt.current, tt.previous), "PercentChange(%d, %d)", tt.current, tt.previous)
	}
}

func TestSchemaEmbedded(t *testing.T) {
	assert.True(t, strings.Contains(schema, "CREATE TABLE IF NOT EXISTS ghosting_reports"))
}

// TestReportStore runs against a real database when RWAI_TEST_DATABASE_URL is set.
func TestReportStore(t *testing.T) {
	url := os.Getenv("RWAI_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("RWAI_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, url)
	require.NoError(t, err)
	store := NewReportStore(pool)
	defer store.Close()
	require.NoError(t, store.EnsureSchema(ctx))

	company := "Acme-" + uuid.NewString()
	now := time.Now().UTC()
	for i, got := range []bool{true, false, false} {
		require.NoError(t, store.InsertReport(ctx, domain.GhostingReport{
			ID:          uuid.NewString(),
			Company:     company,
			JobTitle:    "Engineer",
			GotResponse: got,
			ReportedAt:  now.Add(-time.Duration(i) * time.Hour),
		}))
	}

	responses, total, err := store.ResponseStats(ctx, strings.ToUpper(company), now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, responses)
	assert.Equal(t, 3, total)

	_, err = store.PruneBefore(ctx, now.Add(-90*time.Minute))
	require.NoError(t, err)

	_, total, err = store.ResponseStats(ctx, company, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
