package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/index"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

// LedgerSource returns every persisted ledger keyed by user.
type LedgerSource interface {
	GetAllLedgers(ctx context.Context) (map[string][]domain.TrackedApplication, error)
}

// RedisSyncer loads persisted ledgers into the memory index on startup
type RedisSyncer struct {
	store  LedgerSource
	index  *index.LedgerIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store LedgerSource,
	idx *index.LedgerIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads ledgers from Redis and replaces the memory index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing ledgers from redis to memory")

	ledgers, err := rs.store.GetAllLedgers(ctx)
	if err != nil {
		return err
	}

	if len(ledgers) == 0 {
		rs.logger.Info("no ledgers found in redis")
		return nil
	}

	rs.index.ReplaceAll(ledgers)

	rs.logger.Info("synced ledgers from redis",
		logger.Int("users", rs.index.Users()),
		logger.Int("entries", rs.index.Count()))

	return nil
}
