package publisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image_fetcher/internal/domain"
)

func TestEncodeSearchEvent(t *testing.T) {
	at := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	log := &domain.SearchLog{
		ID:          9,
		Query:       "lighthouse",
		Requested:   []string{"loc", "archive"},
		Represented: []string{"archive"},
		Fetched:     6,
		Returned:    4,
		DurationMS:  2000,
	}

	body, err := encodeSearchEvent(log, at)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "search.completed", raw["action"])
	assert.Equal(t, "2026-05-04T03:02:01Z", raw["timestamp"])

	search, ok := raw["search"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "lighthouse", search["query"])
	assert.Equal(t, []any{"loc", "archive"}, search["requested"])
	assert.Equal(t, float64(4), search["returned"])
	assert.Equal(t, float64(2000), search["durationMs"])
	assert.NotContains(t, search, "duration")
}
