package domain

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// HistoricalCutoffYear is the first year not considered historical content.
const HistoricalCutoffYear = 2000

// ImageRecord is one normalized image returned by a source.
type ImageRecord struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	Thumbnail    string   `json:"thumbnail"`
	Title        string   `json:"title"`
	Source       SourceID `json:"source"`
	SourceURL    string   `json:"sourceUrl"`
	Year         *int     `json:"year,omitempty"`
	Date         string   `json:"date,omitempty"`
	IsHistorical bool     `json:"isHistorical,omitempty"`
}

// CanonicalURL returns the URL with its query string removed.
// Scheme and host are compared as-is.
func (r ImageRecord) CanonicalURL() string {
	canonical, _, _ := strings.Cut(r.URL, "?")
	return canonical
}

// HasYear reports whether a year was extracted for the record.
func (r ImageRecord) HasYear() bool {
	return r.Year != nil
}

// FinalizeRecords stamps records with their source and fills defaults.
// Records without a URL are dropped.
func FinalizeRecords(source SourceID, records []ImageRecord) []ImageRecord {
	out := make([]ImageRecord, 0, len(records))

	for _, r := range records {
		r.URL = strings.TrimSpace(r.URL)
		if r.URL == "" {
			continue
		}

		r.Source = source
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if strings.TrimSpace(r.Thumbnail) == "" {
			r.Thumbnail = r.URL
		}
		r.Title = strings.TrimSpace(r.Title)
		if r.Title == "" {
			r.Title = source.DisplayName() + " image"
		}
		if r.SourceURL == "" {
			r.SourceURL = r.URL
		}
		if r.Year == nil && r.Date != "" {
			r.Year = ExtractYear(r.Date)
		}
		if source.IsArchival() || (r.Year != nil && *r.Year < HistoricalCutoffYear) {
			r.IsHistorical = true
		}

		out = append(out, r)
	}

	return out
}

// A year may carry a decade "s" or sit glued to a letter prefix ("c1923"),
// but never inside a longer run of digits.
var yearPattern = regexp.MustCompile(`(?:^|[^0-9])(1[0-9]{3}|20[0-9]{2})(?:s|[^0-9]|$)`)

// ExtractYear returns the first plausible four-digit year in s.
func ExtractYear(s string) *int {
	m := yearPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &year
}
