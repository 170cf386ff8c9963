package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"image_fetcher/internal/aggregator"
	"image_fetcher/internal/domain"
	"image_fetcher/internal/timeline"
)

var ErrHistoryDisabled = errors.New("search history is disabled")

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

type SearchService struct {
	aggregator Aggregator
	history    SearchLogStore
	publisher  Publisher
	deadline   time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewSearchService builds the search pipeline. history and publisher may be nil.
func NewSearchService(
	agg Aggregator,
	history SearchLogStore,
	publisher Publisher,
	deadline time.Duration,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		aggregator: agg,
		history:    history,
		publisher:  publisher,
		deadline:   deadline,
		logger:     logger.With("component", "search"),
		now:        time.Now,
	}
}

// Search returns the deduplicated and shuffled images for query.
func (s *SearchService) Search(ctx context.Context, query string, sources []domain.SourceID) (*domain.SearchResult, error) {
	start := s.now()

	images, fetched, err := s.collect(ctx, query, sources)
	if err != nil {
		return nil, err
	}
	images = aggregator.Mix(images)

	result := &domain.SearchResult{
		Query:   strings.TrimSpace(query),
		Images:  images,
		Count:   len(images),
		Sources: domain.RepresentedSources(images),
	}

	s.recordSearch(ctx, result.Query, sources, fetched, images, s.now().Sub(start))

	return result, nil
}

// Timeline returns the deduplicated images for query grouped into periods.
func (s *SearchService) Timeline(ctx context.Context, query string, sources []domain.SourceID) (*domain.TimelineResult, error) {
	start := s.now()

	images, fetched, err := s.collect(ctx, query, sources)
	if err != nil {
		return nil, err
	}

	periods := timeline.BucketAt(images, s.now().Year())
	if periods == nil {
		periods = []domain.TimelinePeriod{}
	}

	result := &domain.TimelineResult{
		Query:   strings.TrimSpace(query),
		Periods: periods,
		Count:   len(images),
		Sources: domain.RepresentedSources(images),
	}

	s.recordSearch(ctx, result.Query, sources, fetched, images, s.now().Sub(start))

	return result, nil
}

// Sources lists the registered sources.
func (s *SearchService) Sources() []domain.SourceInfo {
	defaults := s.aggregator.Defaults()

	registered := s.aggregator.Registered()
	infos := make([]domain.SourceInfo, 0, len(registered))
	for _, id := range registered {
		infos = append(infos, domain.SourceInfo{
			ID:         id,
			Name:       s.aggregator.SourceName(id),
			Historical: id.IsArchival(),
			Default:    slices.Contains(defaults, id),
		})
	}
	return infos
}

// History returns the most recent searches, newest first.
func (s *SearchService) History(ctx context.Context, limit int) ([]domain.SearchLog, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	logs, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load search history: %w", err)
	}
	if logs == nil {
		logs = []domain.SearchLog{}
	}
	return logs, nil
}

func (s *SearchService) collect(ctx context.Context, query string, sources []domain.SourceID) ([]domain.ImageRecord, int, error) {
	if s.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.deadline)
		defer cancel()
	}

	records, err := s.aggregator.Aggregate(ctx, query, sources)
	if err != nil {
		return nil, 0, err
	}

	images := aggregator.Deduplicate(records)
	if images == nil {
		images = []domain.ImageRecord{}
	}

	s.logger.Debug("collected images",
		"query", query,
		"fetched", len(records),
		"unique", len(images),
	)

	return images, len(records), nil
}

// recordSearch stores and publishes the search statistics. Failures are logged only.
func (s *SearchService) recordSearch(
	ctx context.Context,
	query string,
	requested []domain.SourceID,
	fetched int,
	images []domain.ImageRecord,
	duration time.Duration,
) {
	if len(requested) == 0 {
		requested = s.aggregator.Defaults()
	}

	log := &domain.SearchLog{
		Query:       query,
		Requested:   sourceStrings(requested),
		Represented: sourceStrings(domain.RepresentedSources(images)),
		Fetched:     fetched,
		Returned:    len(images),
		DurationMS:  duration.Milliseconds(),
		CreatedAt:   s.now().UTC(),
	}

	s.logger.Info("search completed",
		"query", query,
		"fetched", log.Fetched,
		"returned", log.Returned,
		"sources", log.Represented,
		"duration", duration,
	)

	if s.history != nil {
		if _, err := s.history.Record(ctx, log); err != nil {
			s.logger.Error("failed to record search", "error", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, log); err != nil {
			s.logger.Error("failed to publish search event", "error", err)
		}
	}
}

func sourceStrings(ids []domain.SourceID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
