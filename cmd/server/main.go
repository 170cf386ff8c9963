package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"image_fetcher/internal/aggregator"
	"image_fetcher/internal/config"
	"image_fetcher/internal/httpapi"
	"image_fetcher/internal/publisher"
	"image_fetcher/internal/scheduler"
	"image_fetcher/internal/service"
	"image_fetcher/internal/source"
	"image_fetcher/internal/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	orchestrator := aggregator.NewOrchestrator(aggregator.Config{
		DefaultSources: cfg.Sources.DefaultSourceIDs(),
		MaxResults:     cfg.Sources.MaxResults,
	}, logger, source.FromConfig(cfg.Sources, logger)...)

	var history service.SearchLogStore
	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		logger.Info("connected to database")

		store := postgres.NewSearchLogStore(db)
		history = store

		retention := service.NewRetentionService(store, cfg.History.Retention, logger)
		sched := scheduler.NewScheduler(retention, scheduler.Config{
			Interval:   cfg.History.PruneInterval,
			RunTimeout: cfg.History.PruneTimeout,
		}, logger)
		go func() {
			if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("scheduler error", "error", err)
			}
		}()
	}

	var events service.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		events = rabbitMQ
	}

	searchService := service.NewSearchService(orchestrator, history, events, cfg.Search.Deadline, logger)

	app := httpapi.NewApp(httpapi.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		AccessLog:    true,
	}, httpapi.NewHandler(searchService, logger))

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error("failed to shut down http server", "error", err)
		}
	}()

	logger.Info("starting image fetcher",
		"addr", cfg.Server.Addr,
		"sources", orchestrator.Registered(),
		"defaults", orchestrator.Defaults(),
		"history", cfg.Database.Enabled,
		"events", cfg.RabbitMQ.Enabled,
	)

	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}

	logger.Info("image fetcher stopped")
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
