package domain

import "time"

// SearchResult is the flat response of one aggregation request.
type SearchResult struct {
	Query   string        `json:"query"`
	Images  []ImageRecord `json:"images"`
	Count   int           `json:"count"`
	Sources []SourceID    `json:"sources"`
}

// TimelineResult is the bucketed response of one aggregation request.
type TimelineResult struct {
	Query   string           `json:"query"`
	Periods []TimelinePeriod `json:"periods"`
	Count   int              `json:"count"`
	Sources []SourceID       `json:"sources"`
}

// SourceInfo describes a registered source for API consumers.
type SourceInfo struct {
	ID         SourceID `json:"id"`
	Name       string   `json:"name"`
	Historical bool     `json:"historical"`
	Default    bool     `json:"default"`
}

// SearchLog holds statistics about one completed search.
type SearchLog struct {
	ID          int64         `json:"id"`
	Query       string        `json:"query"`
	Requested   []string      `json:"requested"`
	Represented []string      `json:"represented"`
	Fetched     int           `json:"fetched"`
	Returned    int           `json:"returned"`
	DurationMS  int64         `json:"durationMs"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// RepresentedSources returns the distinct sources of images in first-appearance order.
func RepresentedSources(images []ImageRecord) []SourceID {
	seen := make(map[SourceID]struct{})
	sources := make([]SourceID, 0)
	for _, img := range images {
		if _, ok := seen[img.Source]; ok {
			continue
		}
		seen[img.Source] = struct{}{}
		sources = append(sources, img.Source)
	}
	return sources
}
