package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RetentionService deletes search history older than the retention window.
type RetentionService struct {
	history   SearchLogStore
	retention time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

func NewRetentionService(history SearchLogStore, retention time.Duration, logger *slog.Logger) *RetentionService {
	return &RetentionService{
		history:   history,
		retention: retention,
		logger:    logger.With("component", "retention"),
		now:       time.Now,
	}
}

func (r *RetentionService) Prune(ctx context.Context) (int64, error) {
	cutoff := r.now().Add(-r.retention)

	deleted, err := r.history.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete search history: %w", err)
	}

	r.logger.Info("pruned search history", "deleted", deleted, "cutoff", cutoff)

	return deleted, nil
}
