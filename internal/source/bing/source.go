package bing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/net/html"

	"image_fetcher/internal/domain"
	"image_fetcher/internal/source/web"
)

const (
	SourceID       = domain.SourceBing
	SourceName     = "Bing Images"
	DefaultBaseURL = "https://www.bing.com/images/search"

	resultClass = "iusc"
	pageSize    = 35
)

// Config holds Bing source configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Source implements aggregator.Source by reading the Bing Images results page.
type Source struct {
	client  *web.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a new Bing source.
func New(cfg Config, logger *slog.Logger) *Source {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{
		client:  web.NewClient(cfg.Timeout, cfg.UserAgent),
		baseURL: baseURL,
		logger:  logger.With("source", SourceID),
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

// FetchImages loads the first results page and extracts up to limit images.
func (s *Source) FetchImages(ctx context.Context, query string, limit int) ([]domain.ImageRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("first", "1")
	params.Set("count", fmt.Sprint(pageSize))

	doc, err := s.client.GetHTML(ctx, s.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("load results page: %w", err)
	}

	records := s.extract(doc, limit)
	s.logger.Debug("fetched images", "count", len(records))

	return records, nil
}

func (s *Source) extract(doc *html.Node, limit int) []domain.ImageRecord {
	var records []domain.ImageRecord

	web.Walk(doc, func(n *html.Node) {
		if limit > 0 && len(records) >= limit {
			return
		}
		if n.Data != "a" || !web.HasClass(n, resultClass) {
			return
		}

		raw := web.Attr(n, "m")
		if raw == "" {
			return
		}
		var m Metadata
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			s.logger.Warn("skipping result with unreadable metadata", "error", err)
			return
		}
		if m.MediaURL == "" {
			return
		}

		records = append(records, domain.ImageRecord{
			URL:       m.MediaURL,
			Thumbnail: m.ThumbURL,
			Title:     m.Title,
			SourceURL: m.PageURL,
		})
	})

	return domain.FinalizeRecords(SourceID, records)
}
