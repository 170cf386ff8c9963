package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"image_fetcher/internal/domain"
)

type Aggregator interface {
	Aggregate(ctx context.Context, query string, enabled []domain.SourceID) ([]domain.ImageRecord, error)
	Registered() []domain.SourceID
	Defaults() []domain.SourceID
	SourceName(id domain.SourceID) string
}

type SearchLogStore interface {
	Record(ctx context.Context, log *domain.SearchLog) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.SearchLog, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Publisher interface {
	Publish(ctx context.Context, log *domain.SearchLog) error
	Close() error
}
