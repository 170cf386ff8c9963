package source

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"image_fetcher/internal/config"
	"image_fetcher/internal/domain"
)

func TestFromConfig_CoversKnownSources(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	sources := FromConfig(config.SourcesConfig{}, logger)

	ids := make([]domain.SourceID, len(sources))
	for i, s := range sources {
		ids[i] = s.ID()
		assert.Equal(t, s.ID().DisplayName(), s.Name())
	}
	assert.Equal(t, domain.KnownSources, ids)
}
