// Package postgres stores community ghosting reports.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
)

//go:embed schema.sql
var schema string

// ReportStore reads and writes the ghosting_reports table.
type ReportStore struct {
	pool *pgxpool.Pool
}

// Connect creates and verifies a pgxpool connection pool.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

func NewReportStore(pool *pgxpool.Pool) *ReportStore {
	return &ReportStore{pool: pool}
}

// EnsureSchema creates the reports table and its indexes if missing.
func (s *ReportStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *ReportStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *ReportStore) Close() {
	s.pool.Close()
}

// InsertReport stores one report.
func (s *ReportStore) InsertReport(ctx context.Context, r domain.GhostingReport) error {
	const q = `
		INSERT INTO ghosting_reports
			(id, company, job_title, job_url, platform, applied_date,
			 days_since_application, got_response, user_id, reported_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`

	_, err := s.pool.Exec(ctx, q,
		r.ID, r.Company, r.JobTitle, r.JobURL, r.Platform, r.AppliedDate,
		r.DaysSinceApplication, r.GotResponse, r.UserID, r.ReportedAt)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// ResponseStats counts the reports about company since a point in time and
// how many of them got a response. Company matching is case-insensitive.
func (s *ReportStore) ResponseStats(ctx context.Context, company string, since time.Time) (responses, total int, err error) {
	const q = `
		SELECT COUNT(*) FILTER (WHERE got_response), COUNT(*)
		FROM ghosting_reports
		WHERE lower(company) = lower($1) AND reported_at > $2`

	if err := s.pool.QueryRow(ctx, q, company, since).Scan(&responses, &total); err != nil {
		return 0, 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return responses, total, nil
}

// GhostingTrend returns the percentage change in ghosting reports between
// the last window and the window before it.
func (s *ReportStore) GhostingTrend(ctx context.Context, now time.Time, window time.Duration) (float64, error) {
	const q = `
		SELECT
			COUNT(*) FILTER (WHERE reported_at >  $1),
			COUNT(*) FILTER (WHERE reported_at <= $1 AND reported_at > $2)
		FROM ghosting_reports
		WHERE NOT got_response AND reported_at > $2`

	var current, previous int
	if err := s.pool.QueryRow(ctx, q, now.Add(-window), now.Add(-2*window)).Scan(&current, &previous); err != nil {
		return 0, fmt.Errorf("failed to compute ghosting trend: %w", err)
	}
	return PercentChange(current, previous), nil
}

// PruneBefore deletes reports older than cutoff and returns how many went.
func (s *ReportStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM ghosting_reports WHERE reported_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune reports: %w", err)
	}
	return tag.RowsAffected(), nil
}

// PercentChange is (current-previous)/previous in percent, rounded to one
// decimal. With no previous activity any new report counts as +100%.
func PercentChange(current, previous int) float64 {
	switch {
	case previous == 0 && current == 0:
		return 0
	case previous == 0:
		return 100
	}
	v := float64(current-previous) / float64(previous) * 100
	return math.Round(v*10) / 10
}
