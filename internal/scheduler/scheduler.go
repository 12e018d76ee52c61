package scheduler

import (
	"context"
	"log/slog"
	"time"

	"quizsync/internal/domain"
	"quizsync/internal/service"
)

// Syncer defines the interface for a full subscriptions sync.
type Syncer interface {
	SyncSubscriptions(ctx context.Context, opts service.SubscriptionSyncOptions, progress service.ProgressFunc) (*domain.SyncStats, error)
}

type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(syncer Syncer, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if _, err := s.syncer.SyncSubscriptions(syncCtx, service.SubscriptionSyncOptions{}, nil); err != nil {
		s.logger.Error("sync failed", "error", err)
	}
}
