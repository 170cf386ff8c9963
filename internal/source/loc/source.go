package loc

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"image_fetcher/internal/domain"
	"image_fetcher/internal/source/web"
)

const (
	SourceID       = domain.SourceLOC
	SourceName     = "Library of Congress"
	DefaultBaseURL = "https://www.loc.gov/photos/"

	maxLimit = 100
)

// Config holds Library of Congress source configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Source implements aggregator.Source for the loc.gov photo collections.
type Source struct {
	client  *web.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a new Library of Congress source.
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

// FetchImages searches photos, prints and drawings.
func (s *Source) FetchImages(ctx context.Context, query string, limit int) ([]domain.ImageRecord, error) {
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("fo", "json")
	params.Set("c", strconv.Itoa(limit))

	var resp APIResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search loc.gov: %w", err)
	}

	records := s.transform(resp.Results)
	s.logger.Debug("fetched images", "count", len(records))

	return records, nil
}

func (s *Source) transform(results []Result) []domain.ImageRecord {
	records := make([]domain.ImageRecord, 0, len(results))

	for _, r := range results {
		if len(r.ImageURL) == 0 {
			s.logger.Warn("result without images", "item", r.ID)
			continue
		}

		// image_url is ordered smallest to largest.
		pageURL := r.URL
		if pageURL == "" {
			pageURL = r.ID
		}
		records = append(records, domain.ImageRecord{
			URL:       absolute(stripFragment(r.ImageURL[len(r.ImageURL)-1])),
			Thumbnail: absolute(stripFragment(r.ImageURL[0])),
			Title:     r.Title,
			SourceURL: pageURL,
			Date:      r.Date,
		})
	}

	return domain.FinalizeRecords(SourceID, records)
}

// stripFragment drops the "#h=..&w=.." size hint loc.gov appends to image URLs.
func stripFragment(u string) string {
	u, _, _ = strings.Cut(u, "#")
	return u
}

func absolute(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}
