package wikimedia

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"image_fetcher/internal/domain"
	"image_fetcher/internal/source/web"
)

const (
	SourceID       = domain.SourceWikimedia
	SourceName     = "Wikimedia Commons"
	DefaultBaseURL = "https://commons.wikimedia.org/w/api.php"

	maxLimit   = 50
	thumbWidth = 400
)

// Config holds Wikimedia Commons source configuration.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Source implements aggregator.Source for Wikimedia Commons file search.
type Source struct {
	client  *web.Client
	baseURL string
	logger  *slog.Logger
}

// New creates a new Wikimedia Commons source.
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

// FetchImages searches the File namespace and returns image records.
func (s *Source) FetchImages(ctx context.Context, query string, limit int) ([]domain.ImageRecord, error) {
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("generator", "search")
	params.Set("gsrsearch", query)
	params.Set("gsrnamespace", "6")
	params.Set("gsrlimit", strconv.Itoa(limit))
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url|extmetadata")
	params.Set("iiurlwidth", strconv.Itoa(thumbWidth))

	var resp APIResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("search commons: %w", err)
	}

	records := s.transform(resp)
	s.logger.Debug("fetched images", "count", len(records))

	return records, nil
}

func (s *Source) transform(resp APIResponse) []domain.ImageRecord {
	if resp.Query == nil {
		return nil
	}

	pages := make([]Page, 0, len(resp.Query.Pages))
	for _, p := range resp.Query.Pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Index < pages[j].Index
	})

	records := make([]domain.ImageRecord, 0, len(pages))
	for _, p := range pages {
		if len(p.ImageInfo) == 0 {
			s.logger.Warn("page without imageinfo", "page_id", p.PageID)
			continue
		}
		info := p.ImageInfo[0]

		record := domain.ImageRecord{
			URL:       info.URL,
			Thumbnail: info.ThumbURL,
			Title:     pageTitle(p.Title),
			SourceURL: info.DescriptionURL,
		}
		if name := metaText(info.ExtMetadata.ObjectName); name != "" {
			record.Title = name
		}
		date := metaText(info.ExtMetadata.DateTimeOriginal)
		if date == "" {
			date = metaText(info.ExtMetadata.DateTime)
		}
		record.Date = date

		records = append(records, record)
	}

	return domain.FinalizeRecords(SourceID, records)
}

// pageTitle turns "File:Old Town 1920.jpg" into "Old Town 1920".
func pageTitle(title string) string {
	title = strings.TrimPrefix(title, "File:")
	return strings.TrimSuffix(title, path.Ext(title))
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func metaText(v *MetadataValue) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(tagPattern.ReplaceAllString(v.Value, ""))
}
