package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"image_fetcher/internal/service/mocks"
)

func TestRetentionService_Prune(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockSearchLogStore(ctrl)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	svc := NewRetentionService(history, 48*time.Hour, logger)
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	history.EXPECT().DeleteBefore(ctx, now.Add(-48*time.Hour)).Return(int64(7), nil)

	deleted, err := svc.Prune(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}

func TestRetentionService_PruneError(t *testing.T) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockSearchLogStore(ctrl)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	svc := NewRetentionService(history, time.Hour, logger)
	history.EXPECT().DeleteBefore(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("locked"))

	_, err := svc.Prune(context.Background())

	assert.ErrorContains(t, err, "delete search history")
}
