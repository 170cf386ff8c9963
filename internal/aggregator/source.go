package aggregator

//go:generate mockgen -source=source.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"image_fetcher/internal/domain"
)

// Source fetches normalized image records from one external provider.
// Implementations return an error for any upstream failure; the orchestrator
// absorbs it.
type Source interface {
	ID() domain.SourceID
	Name() string
	FetchImages(ctx context.Context, query string, limit int) ([]domain.ImageRecord, error)
}

// SourceResult is the outcome of a single adapter call.
type SourceResult struct {
	Source   domain.SourceID
	Records  []domain.ImageRecord
	Err      error
	Duration time.Duration
}

// OK reports whether the adapter call succeeded.
func (r SourceResult) OK() bool {
	return r.Err == nil
}
