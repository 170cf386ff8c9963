package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image_fetcher/internal/domain"
	"image_fetcher/testdata/utils"
)

func TestTable_AlignsByDisplayWidth(t *testing.T) {
	lines := table([][]string{
		{"SOURCE", "TITLE", "URL"},
		{"bing", "東京タワー", "https://a"},
		{"loc", "Tokyo", "https://b"},
	})

	require.Len(t, lines, 3)
	// The URL column starts at the same display offset on every line.
	offset := runewidth.StringWidth(lines[0][:strings.Index(lines[0], "URL")])
	for _, line := range lines[1:] {
		idx := strings.Index(line, "https://")
		require.GreaterOrEqual(t, idx, 0)
		assert.Equal(t, offset, runewidth.StringWidth(line[:idx]))
	}
	assert.False(t, strings.HasSuffix(lines[1], " "))
}

func TestImages(t *testing.T) {
	var buf bytes.Buffer
	err := Images(&buf, &domain.SearchResult{
		Query: "harbor",
		Images: []domain.ImageRecord{
			{URL: "https://loc.example/1.jpg", Title: "Harbor\nat dusk", Source: domain.SourceLOC, Year: utils.Ptr(1910)},
			{URL: "https://bing.example/2.jpg", Title: strings.Repeat("x", 80), Source: domain.SourceBing},
		},
		Count:   2,
		Sources: []domain.SourceID{domain.SourceLOC, domain.SourceBing},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `2 images for "harbor" from loc, bing`)
	assert.Contains(t, out, "Harbor at dusk")
	assert.Contains(t, out, "1910")
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("x", 80))
}

func TestImages_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := Images(&buf, &domain.SearchResult{Query: "nothing", Images: []domain.ImageRecord{}, Sources: []domain.SourceID{}})
	require.NoError(t, err)

	assert.Equal(t, "0 images for \"nothing\" from no sources\n\n", buf.String())
}

func TestTimeline(t *testing.T) {
	var buf bytes.Buffer
	err := Timeline(&buf, &domain.TimelineResult{
		Query: "tram",
		Periods: []domain.TimelinePeriod{
			{Label: domain.UndatedPeriodLabel, StartYear: 2026, EndYear: 2026, Images: []domain.ImageRecord{
				{URL: "https://a", Title: "Tram", Source: domain.SourceBing},
			}},
			{Label: "1930s", StartYear: 1930, EndYear: 1939, Images: []domain.ImageRecord{
				{URL: "https://b", Title: "Old tram", Source: domain.SourceArchive, Year: utils.Ptr(1934)},
			}},
		},
		Count:   2,
		Sources: []domain.SourceID{domain.SourceBing, domain.SourceArchive},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Modern / Unknown Date (1)")
	assert.Contains(t, out, "1930s [1930-1939] (1)")
	assert.Less(t, strings.Index(out, "Modern / Unknown Date"), strings.Index(out, "1930s"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"count": 3}))

	var got map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 3, got["count"])
	assert.Contains(t, buf.String(), "\n  \"count\"")
}
