// Package source builds the configured set of image source adapters.
package source

import (
	"log/slog"

	"image_fetcher/internal/aggregator"
	"image_fetcher/internal/config"
	"image_fetcher/internal/source/archive"
	"image_fetcher/internal/source/bing"
	"image_fetcher/internal/source/google"
	"image_fetcher/internal/source/loc"
	"image_fetcher/internal/source/wikimedia"
)

// FromConfig creates one adapter per known source.
func FromConfig(cfg config.SourcesConfig, logger *slog.Logger) []aggregator.Source {
	return []aggregator.Source{
		google.New(google.Config{
			BaseURL:        cfg.Google.BaseURL,
			APIKey:         cfg.Google.APIKey,
			SearchEngineID: cfg.Google.SearchEngineID,
			Timeout:        cfg.Timeout,
			UserAgent:      cfg.UserAgent,
		}, logger),
		bing.New(bing.Config{
			BaseURL:   cfg.Bing.BaseURL,
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
		}, logger),
		loc.New(loc.Config{
			BaseURL:   cfg.LOC.BaseURL,
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
		}, logger),
		wikimedia.New(wikimedia.Config{
			BaseURL:   cfg.Wikimedia.BaseURL,
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
		}, logger),
		archive.New(archive.Config{
			BaseURL:   cfg.Archive.BaseURL,
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
		}, logger),
	}
}
