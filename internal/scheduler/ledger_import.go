package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/sources/ledgerfile"
)

// LedgerImporterTarget receives imported applications.
type LedgerImporterTarget interface {
	Import(ctx context.Context, userID string, entries []domain.TrackedApplication) int
}

// LedgerImporter handles periodic importing of a ledger file
type LedgerImporter struct {
	loader   *ledgerfile.Loader
	owner    string
	target   LedgerImporterTarget
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewLedgerImporter creates a new ledger importer. Ledgers in the file that
// name no user are imported for owner.
func NewLedgerImporter(
	ledgerFile string,
	owner string,
	target LedgerImporterTarget,
	log logger.Logger,
	interval time.Duration,
) *LedgerImporter {
	return &LedgerImporter{
		loader:   ledgerfile.NewLoader(ledgerFile),
		owner:    owner,
		target:   target,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start imports once immediately, then every interval. A zero interval
// imports once and never again.
func (li *LedgerImporter) Start(ctx context.Context) error {
	// Load immediately on start
	if _, err := li.Reload(ctx); err != nil {
		return fmt.Errorf("initial ledger import failed: %w", err)
	}

	if li.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(li.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := li.Reload(ctx); err != nil {
					li.logger.Error("failed to import ledger file",
						logger.Error(err))
				}
			case <-li.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the importer
func (li *LedgerImporter) Stop() {
	close(li.stopCh)
}

// Reload reads the ledger file and imports entries not seen before. It
// returns how many entries were added.
func (li *LedgerImporter) Reload(ctx context.Context) (int, error) {
	li.logger.Debug("importing ledger file", logger.String("path", li.loader.Path()))

	file, err := li.loader.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load ledger file: %w", err)
	}

	ledgers, skipped, err := ledgerfile.MapLedgers(file, li.owner)
	if err != nil {
		return 0, fmt.Errorf("failed to map ledger file: %w", err)
	}

	for _, s := range skipped {
		li.logger.Warn("skipping invalid ledger entry",
			logger.String("user_id", s.User),
			logger.Int("index", s.Index),
			logger.String("reason", s.Reason))
	}

	added := 0
	for user, entries := range ledgers {
		added += li.target.Import(ctx, user, entries)
	}

	if added > 0 {
		li.logger.Info("imported ledger entries",
			logger.Int("added", added),
			logger.Int("users", len(ledgers)))
	}
	return added, nil
}
