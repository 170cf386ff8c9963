package httpapi

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"image_fetcher/internal/domain"
	"image_fetcher/internal/service"
)

type SearchService interface {
	Search(ctx context.Context, query string, sources []domain.SourceID) (*domain.SearchResult, error)
	Timeline(ctx context.Context, query string, sources []domain.SourceID) (*domain.TimelineResult, error)
	Sources() []domain.SourceInfo
	History(ctx context.Context, limit int) ([]domain.SearchLog, error)
}

type Handler struct {
	search SearchService
	logger *slog.Logger
}

func NewHandler(search SearchService, logger *slog.Logger) *Handler {
	return &Handler{
		search: search,
		logger: logger.With("component", "httpapi"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Images handles GET /api/images?q=<query>&sources=a,b.
func (h *Handler) Images(c *fiber.Ctx) error {
	result, err := h.search.Search(c.UserContext(), c.Query("q"), domain.ParseSourceIDs(c.Query("sources")))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Timeline handles GET /api/timeline?q=<query>&sources=a,b.
func (h *Handler) Timeline(c *fiber.Ctx) error {
	result, err := h.search.Timeline(c.UserContext(), c.Query("q"), domain.ParseSourceIDs(c.Query("sources")))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handler) Sources(c *fiber.Ctx) error {
	return c.JSON(h.search.Sources())
}

// History handles GET /api/history?limit=N.
func (h *Handler) History(c *fiber.Ctx) error {
	logs, err := h.search.History(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(logs)
}

// ErrorHandler maps service errors to status codes and writes {"error": "..."}.
func (h *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var invalid *domain.InvalidInputError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &invalid):
		status = fiber.StatusBadRequest
		message = invalid.Error()
	case errors.Is(err, service.ErrHistoryDisabled):
		status = fiber.StatusServiceUnavailable
		message = err.Error()
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	default:
		h.logger.Error("request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
