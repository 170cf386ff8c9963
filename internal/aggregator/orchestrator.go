package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"image_fetcher/internal/domain"
)

// Config holds orchestrator settings.
type Config struct {
	DefaultSources []domain.SourceID
	MaxResults     int
}

// Orchestrator fans a query out to the enabled sources and collects whatever succeeds.
type Orchestrator struct {
	sources    map[domain.SourceID]Source
	order      []domain.SourceID
	defaults   []domain.SourceID
	maxResults int
	logger     *slog.Logger
}

// NewOrchestrator registers sources under their IDs. Sources with an
// identifier outside the known catalog are not registered.
func NewOrchestrator(cfg Config, logger *slog.Logger, sources ...Source) *Orchestrator {
	o := &Orchestrator{
		sources:    make(map[domain.SourceID]Source, len(sources)),
		defaults:   cfg.DefaultSources,
		maxResults: cfg.MaxResults,
		logger:     logger.With("component", "orchestrator"),
	}

	for _, src := range sources {
		id := src.ID()
		if !id.IsKnown() {
			o.logger.Warn("skipping source with unknown id", "source", id)
			continue
		}
		if _, exists := o.sources[id]; exists {
			o.logger.Warn("duplicate source registration ignored", "source", id)
			continue
		}
		o.sources[id] = src
		o.order = append(o.order, id)
	}

	return o
}

// Registered returns the IDs of registered sources in registration order.
func (o *Orchestrator) Registered() []domain.SourceID {
	return append([]domain.SourceID(nil), o.order...)
}

// Defaults returns the sources used when a request does not name any.
func (o *Orchestrator) Defaults() []domain.SourceID {
	return append([]domain.SourceID(nil), o.defaults...)
}

// SourceName returns the display name of a registered source.
func (o *Orchestrator) SourceName(id domain.SourceID) string {
	if src, ok := o.sources[id]; ok {
		return src.Name()
	}
	return id.DisplayName()
}

// Aggregate runs one adapter call per enabled source concurrently and returns
// the concatenation of their records, ordered by enabled-source order. It waits
// for every adapter unless ctx is done first, in which case it returns the
// records of the adapters that had already completed.
func (o *Orchestrator) Aggregate(ctx context.Context, query string, enabled []domain.SourceID) ([]domain.ImageRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &domain.InvalidInputError{Field: "query", Reason: "must not be empty"}
	}

	selected := o.resolve(enabled)
	if len(selected) == 0 {
		o.logger.Info("no registered sources selected", "requested", enabled)
		return []domain.ImageRecord{}, nil
	}

	type indexed struct {
		idx    int
		result SourceResult
	}

	// Buffered so adapters abandoned after cancellation can still send and exit.
	results := make(chan indexed, len(selected))
	for i, src := range selected {
		go func(i int, src Source) {
			results <- indexed{idx: i, result: o.fetch(ctx, src, query)}
		}(i, src)
	}

	collected := make([]*SourceResult, len(selected))
	pending := len(selected)

wait:
	for pending > 0 {
		select {
		case r := <-results:
			collected[r.idx] = &r.result
			pending--
		case <-ctx.Done():
			o.logger.Warn("aggregation interrupted, returning partial results",
				"pending", pending,
				"error", ctx.Err(),
			)
			break wait
		}
	}

	var records []domain.ImageRecord
	for _, r := range collected {
		if r == nil || !r.OK() {
			continue
		}
		records = append(records, r.Records...)
	}
	if records == nil {
		records = []domain.ImageRecord{}
	}

	o.logger.Info("aggregation completed",
		"query", query,
		"sources", len(selected),
		"completed", len(selected)-pending,
		"records", len(records),
	)

	return records, nil
}

// resolve maps requested identifiers to registered sources, applying defaults
// and dropping unknown or repeated identifiers.
func (o *Orchestrator) resolve(enabled []domain.SourceID) []Source {
	if len(enabled) == 0 {
		enabled = o.defaults
	}

	seen := make(map[domain.SourceID]struct{}, len(enabled))
	selected := make([]Source, 0, len(enabled))
	for _, id := range enabled {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		src, ok := o.sources[id]
		if !ok {
			o.logger.Debug("ignoring unavailable source", "source", id)
			continue
		}
		selected = append(selected, src)
	}
	return selected
}

// fetch invokes one adapter and converts any error or panic into an empty result.
func (o *Orchestrator) fetch(ctx context.Context, src Source, query string) (result SourceResult) {
	start := time.Now()
	result.Source = src.ID()
	logger := o.logger.With("source", src.ID())

	defer func() {
		if p := recover(); p != nil {
			result.Records = nil
			result.Err = fmt.Errorf("source panicked: %v", p)
		}
		result.Duration = time.Since(start)

		if result.Err != nil {
			logger.Warn("source failed, continuing without it",
				"error", result.Err,
				"duration", result.Duration,
			)
			return
		}
		logger.Debug("source completed",
			"records", len(result.Records),
			"duration", result.Duration,
		)
	}()

	records, err := src.FetchImages(ctx, query, o.maxResults)
	if err != nil {
		result.Err = fmt.Errorf("fetch images: %w", err)
		return result
	}

	result.Records = o.conform(src.ID(), records)
	return result
}

// conform keeps the adapter's records within the limit and stamped with its ID.
func (o *Orchestrator) conform(id domain.SourceID, records []domain.ImageRecord) []domain.ImageRecord {
	if o.maxResults > 0 && len(records) > o.maxResults {
		records = records[:o.maxResults]
	}
	out := make([]domain.ImageRecord, len(records))
	for i, r := range records {
		r.Source = id
		out[i] = r
	}
	return out
}
