package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"image_fetcher/internal/domain"
	"image_fetcher/internal/source/web"
)

const (
	SourceID       = domain.SourceGoogle
	SourceName     = "Google Images"
	DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

	maxLimit = 10
)

// ErrNotConfigured is returned when no API key or search engine ID is set.
var ErrNotConfigured = errors.New("google custom search is not configured")

// Config holds Google Custom Search source configuration.
type Config struct {
	BaseURL        string
	APIKey         string
	SearchEngineID string
	Timeout        time.Duration
	UserAgent      string
}

// Source implements aggregator.Source using the Custom Search JSON API in image mode.
type Source struct {
	client         *web.Client
	baseURL        string
	apiKey         string
	searchEngineID string
	logger         *slog.Logger
}

// New creates a new Google source.
func New(cfg Config, logger *slog.Logger) *Source {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{
		client:         web.NewClient(cfg.Timeout, cfg.UserAgent),
		baseURL:        baseURL,
		apiKey:         cfg.APIKey,
		searchEngineID: cfg.SearchEngineID,
		logger:         logger.With("source", SourceID),
	}
}

// ID returns the source identifier.
func (s *Source) ID() domain.SourceID {
	return SourceID
}

// Name returns human-readable name.
func (s *Source) Name() string {
	return SourceName
}

// FetchImages runs one image search request; the API caps results at 10.
func (s *Source) FetchImages(ctx context.Context, query string, limit int) ([]domain.ImageRecord, error) {
	if s.apiKey == "" || s.searchEngineID == "" {
		return nil, ErrNotConfigured
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("cx", s.searchEngineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("num", strconv.Itoa(limit))
	params.Set("safe", "active")

	var resp APIResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("custom search: %w", err)
	}

	records := transform(resp.Items)
	s.logger.Debug("fetched images", "count", len(records))

	return records, nil
}

func transform(items []Item) []domain.ImageRecord {
	records := make([]domain.ImageRecord, 0, len(items))

	for _, item := range items {
		record := domain.ImageRecord{
			URL:   item.Link,
			Title: item.Title,
		}
		if item.Image != nil {
			record.Thumbnail = item.Image.ThumbnailLink
			record.SourceURL = item.Image.ContextLink
		}
		records = append(records, record)
	}

	return domain.FinalizeRecords(SourceID, records)
}
