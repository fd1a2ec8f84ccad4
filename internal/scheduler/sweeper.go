package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MrSnakeDoc/rolewithai/internal/ledger"
	"github.com/MrSnakeDoc/rolewithai/internal/logger"
)

// LedgerSweeper automates every ledger in one pass.
type LedgerSweeper interface {
	Sweep(ctx context.Context) ledger.SweepReport
}

// Sweeper runs the ledger automation on a cron schedule
type Sweeper struct {
	ledger        LedgerSweeper
	logger        logger.Logger
	interval      time.Duration
	cron          *cron.Cron
	manualTrigger chan struct{}
	stopCh        chan struct{}
}

// NewSweeper creates a sweeper firing every interval. manualTrigger may be
// nil.
func NewSweeper(l LedgerSweeper, log logger.Logger, interval time.Duration, manualTrigger chan struct{}) *Sweeper {
	return &Sweeper{
		ledger:        l,
		logger:        log,
		interval:      interval,
		cron:          cron.New(cron.WithLogger(cronLogger{log})),
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
	}
}

// Start sweeps once immediately, then on schedule.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", s.interval)
	}

	s.Run(ctx)

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.Run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule ledger sweep: %w", err)
	}
	s.cron.Start()

	go func() {
		for {
			select {
			case <-s.manualTrigger:
				s.logger.Info("manual ledger sweep triggered")
				s.Run(ctx)
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	s.logger.Info("ledger sweeper started", logger.Duration("interval", s.interval))
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.cron.Stop().Done()
}

// Run performs one sweep and logs its outcome.
func (s *Sweeper) Run(ctx context.Context) ledger.SweepReport {
	report := s.ledger.Sweep(ctx)

	if report.Changed > 0 {
		s.logger.Info("ledger sweep completed",
			logger.Int("users", report.Users),
			logger.Int("entries", report.Entries),
			logger.Int("changed", report.Changed),
			logger.Duration("took", report.Duration))
	} else {
		s.logger.Debug("ledger sweep found nothing to change",
			logger.Int("entries", report.Entries))
	}
	return report
}

// cronLogger routes cron's own messages through our logger.
type cronLogger struct {
	log logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debugf("cron: %s %v", msg, keysAndValues)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error("cron: "+msg, logger.Error(err), logger.String("details", fmt.Sprint(keysAndValues...)))
}
