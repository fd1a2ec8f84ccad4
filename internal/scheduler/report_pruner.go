package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

const (
	// DefaultReportRetention is how long ghosting reports are kept
	DefaultReportRetention = 180 * 24 * time.Hour
)

// ReportPrunerStore deletes reports older than a cutoff.
type ReportPrunerStore interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReportPruner handles cleanup of expired ghosting reports
type ReportPruner struct {
	store     ReportPrunerStore
	logger    logger.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	stopCh    chan struct{}
}

// NewReportPruner creates a new report pruner
func NewReportPruner(
	store ReportPrunerStore,
	log logger.Logger,
	interval time.Duration,
	retention time.Duration,
) *ReportPruner {
	if retention == 0 {
		retention = DefaultReportRetention
	}

	return &ReportPruner{
		store:     store,
		logger:    log,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic pruning process
func (rp *ReportPruner) Start(ctx context.Context) error {
	// Run immediately on start
	if _, err := rp.Prune(ctx); err != nil {
		rp.logger.Warn("initial report pruning failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(rp.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := rp.Prune(ctx); err != nil {
					rp.logger.Error("report pruning failed",
						logger.Error(err))
				}
			case <-rp.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the pruner
func (rp *ReportPruner) Stop() {
	close(rp.stopCh)
}

// Prune removes reports older than the retention window
func (rp *ReportPruner) Prune(ctx context.Context) (int64, error) {
	cutoff := rp.now().Add(-rp.retention)

	deleted, err := rp.store.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		rp.logger.Info("pruned expired ghosting reports",
			logger.Int64("deleted", deleted),
			logger.Time("cutoff", cutoff))
	} else {
		rp.logger.Debug("no reports to prune")
	}

	return deleted, nil
}
