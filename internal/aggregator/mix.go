package aggregator

import (
	"math/rand/v2"

	"image_fetcher/internal/domain"
)

// Mix returns a shuffled copy of records so that no single source clusters at
// the head of the list. The order is not reproducible.
func Mix(records []domain.ImageRecord) []domain.ImageRecord {
	out := make([]domain.ImageRecord, len(records))
	copy(out, records)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
