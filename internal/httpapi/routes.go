package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AccessLog    bool
}

// NewApp builds the fiber application with all API routes registered.
func NewApp(cfg Config, h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "image_fetcher",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          h.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New())
	}

	SetupRoutes(app, h)

	return app
}

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/health", h.Health)

	api := app.Group("/api")
	api.Get("/images", h.Images)
	api.Get("/timeline", h.Timeline)
	api.Get("/sources", h.Sources)
	api.Get("/history", h.History)
}
