package archive

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
	SourceID       = domain.SourceArchive
	SourceName     = "Internet Archive"
	DefaultBaseURL = "https://archive.org"

	maxLimit = 100
)

// Config holds Internet Archive source configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Source implements aggregator.Source for Internet Archive image items.
type Source struct {
	client  *web.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a new Internet Archive source.
func New(cfg Config, logger *slog.Logger) *Source {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
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

// FetchImages searches items with mediatype image.
func (s *Source) FetchImages(ctx context.Context, query string, limit int) ([]domain.ImageRecord, error) {
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("(%s) AND mediatype:(image)", query))
	params.Add("fl[]", "identifier")
	params.Add("fl[]", "title")
	params.Add("fl[]", "date")
	params.Add("fl[]", "year")
	params.Set("rows", strconv.Itoa(limit))
	params.Set("page", "1")
	params.Set("output", "json")

	var resp APIResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"/advancedsearch.php?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("advanced search: %w", err)
	}

	records := s.transform(resp.Response.Docs)
	s.logger.Debug("fetched images", "count", len(records), "found", resp.Response.NumFound)

	return records, nil
}

func (s *Source) transform(docs []Doc) []domain.ImageRecord {
	records := make([]domain.ImageRecord, 0, len(docs))

	for _, d := range docs {
		if d.Identifier == "" {
			s.logger.Warn("doc without identifier")
			continue
		}
		id := url.PathEscape(d.Identifier)

		record := domain.ImageRecord{
			URL:       s.baseURL + "/services/img/" + id,
			Title:     string(d.Title),
			SourceURL: s.baseURL + "/details/" + id,
			Date:      string(d.Date),
		}
		if d.Year != "" {
			record.Year = domain.ExtractYear(string(d.Year))
		}

		records = append(records, record)
	}

	return domain.FinalizeRecords(SourceID, records)
}
