package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"image_fetcher/internal/aggregator"
	"image_fetcher/internal/config"
	"image_fetcher/internal/domain"
	"image_fetcher/internal/render"
	"image_fetcher/internal/service"
	"image_fetcher/internal/source"
)

const (
	exitError        = 1
	exitInvalidInput = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to config file")
	query := flag.String("q", "", "search query")
	sources := flag.String("sources", "", "comma-separated source ids (default: configured defaults)")
	asTimeline := flag.Bool("timeline", false, "group results into historical periods")
	asJSON := flag.Bool("json", false, "print JSON instead of a table")
	flag.Parse()

	if *query == "" && flag.NArg() > 0 {
		*query = flag.Arg(0)
	}

	logger := setupLogger("warn")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return exitError
	}
	logger = setupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator := aggregator.NewOrchestrator(aggregator.Config{
		DefaultSources: cfg.Sources.DefaultSourceIDs(),
		MaxResults:     cfg.Sources.MaxResults,
	}, logger, source.FromConfig(cfg.Sources, logger)...)

	searchService := service.NewSearchService(orchestrator, nil, nil, cfg.Search.Deadline, logger)
	enabled := domain.ParseSourceIDs(*sources)

	if *asTimeline {
		result, err := searchService.Timeline(ctx, *query, enabled)
		if err != nil {
			return fail(err)
		}
		if *asJSON {
			err = render.JSON(os.Stdout, result)
		} else {
			err = render.Timeline(os.Stdout, result)
		}
		return done(err)
	}

	result, err := searchService.Search(ctx, *query, enabled)
	if err != nil {
		return fail(err)
	}
	if *asJSON {
		err = render.JSON(os.Stdout, result)
	} else {
		err = render.Images(os.Stdout, result)
	}
	return done(err)
}

// loadConfig falls back to built-in defaults when the config file does not exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Parse(nil)
	}
	return cfg, err
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, "error:", err)

	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		flag.Usage()
		return exitInvalidInput
	}
	return exitError
}

func done(err error) int {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: write output:", err)
		return exitError
	}
	return 0
}

// setupLogger logs to stderr so stdout carries only the rendered result.
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}
