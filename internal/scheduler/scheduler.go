package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Pruner removes expired search history.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

type Config struct {
	Interval   time.Duration
	RunTimeout time.Duration
}

// Scheduler runs history pruning on a fixed interval.
type Scheduler struct {
	pruner Pruner
	cfg    Config
	logger *slog.Logger
}

func NewScheduler(pruner Pruner, cfg Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pruner: pruner,
		cfg:    cfg,
		logger: logger.With("component", "scheduler"),
	}
}

// Start prunes immediately and then once per interval until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"interval", s.cfg.Interval,
		"run_timeout", s.cfg.RunTimeout,
	)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		s.prune(ctx)

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) prune(ctx context.Context) {
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	start := time.Now()
	deleted, err := s.pruner.Prune(ctx)
	if err != nil {
		s.logger.Error("prune failed", "error", err, "duration", time.Since(start))
		return
	}
	s.logger.Debug("prune completed", "deleted", deleted, "duration", time.Since(start))
}
