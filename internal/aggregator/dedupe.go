package aggregator

import "image_fetcher/internal/domain"

// Deduplicate keeps the first record for each canonical URL, in input order.
// Records from different sources collapse onto whichever appeared first.
func Deduplicate(records []domain.ImageRecord) []domain.ImageRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]domain.ImageRecord, 0, len(records))

	for _, r := range records {
		key := r.CanonicalURL()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}

	return out
}
