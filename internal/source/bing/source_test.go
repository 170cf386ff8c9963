package bing

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image_fetcher/internal/domain"
)

const fixture = `<!DOCTYPE html>
<html><body>
<ul class="dgControl_list">
  <li><div class="imgpt">
    <a class="iusc" m='{"murl":"https://cdn.example/lighthouse.jpg","turl":"https://tse1.mm.bing.net/th?id=1","purl":"https://example.com/lighthouse","t":"Old lighthouse at dusk"}' href="/images/1"></a>
  </div></li>
  <li><div class="imgpt">
    <a class="iusc" m='{not json' href="/images/2"></a>
  </div></li>
  <li><div class="imgpt">
    <a class="other" m='{"murl":"https://cdn.example/ignored.jpg"}'></a>
  </div></li>
  <li><div class="imgpt">
    <a class="iusc" m='{"turl":"https://tse1.mm.bing.net/th?id=3","t":"no media url"}'></a>
  </div></li>
  <li><div class="imgpt">
    <a class="iusc" m='{"murl":"https://cdn.example/street.png","purl":"https://example.com/street","t":"東京 駅前 1964"}'></a>
  </div></li>
  <li><div class="imgpt">
    <a class="iusc" m='{"murl":"https://cdn.example/third.png","t":"third"}'></a>
  </div></li>
</ul>
</body></html>`

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(Config{BaseURL: srv.URL, Timeout: time.Second}, logger)
}

func TestFetchImages(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tokyo station", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(fixture))
	})

	records, err := src.FetchImages(context.Background(), "tokyo station", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "https://cdn.example/lighthouse.jpg", records[0].URL)
	assert.Equal(t, "https://tse1.mm.bing.net/th?id=1", records[0].Thumbnail)
	assert.Equal(t, "https://example.com/lighthouse", records[0].SourceURL)
	assert.Equal(t, "Old lighthouse at dusk", records[0].Title)
	assert.Nil(t, records[0].Year)
	assert.False(t, records[0].IsHistorical)

	assert.Equal(t, "https://cdn.example/street.png", records[1].URL)
	assert.Equal(t, records[1].URL, records[1].Thumbnail)

	for _, r := range records {
		assert.Equal(t, domain.SourceBing, r.Source)
	}
}

func TestFetchImages_UpstreamError(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := src.FetchImages(context.Background(), "tokyo station", 10)
	assert.ErrorContains(t, err, "load results page")
}
