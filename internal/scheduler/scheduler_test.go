package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPruner struct {
	calls atomic.Int32
	err   error

	mu        sync.Mutex
	deadlines []time.Duration
}

func (p *countingPruner) Prune(ctx context.Context) (int64, error) {
	p.calls.Add(1)
	if deadline, ok := ctx.Deadline(); ok {
		p.mu.Lock()
		p.deadlines = append(p.deadlines, time.Until(deadline))
		p.mu.Unlock()
	}
	return 1, p.err
}

func (p *countingPruner) observedDeadlines() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]time.Duration(nil), p.deadlines...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	pruner := &countingPruner{}
	sched := NewScheduler(pruner, Config{Interval: 10 * time.Millisecond}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sched.Start(ctx) }()

	require.Eventually(t, func() bool {
		return pruner.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.Empty(t, pruner.observedDeadlines())
}

func TestScheduler_AppliesConfiguredRunTimeout(t *testing.T) {
	pruner := &countingPruner{}
	sched := NewScheduler(pruner, Config{
		Interval:   time.Hour,
		RunTimeout: 3 * time.Second,
	}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sched.Start(ctx) }()

	require.Eventually(t, func() bool {
		return len(pruner.observedDeadlines()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	remaining := pruner.observedDeadlines()[0]
	assert.LessOrEqual(t, remaining, 3*time.Second)
	assert.Greater(t, remaining, 2*time.Second)
}

func TestScheduler_ContinuesAfterFailure(t *testing.T) {
	pruner := &countingPruner{err: errors.New("database unavailable")}
	sched := NewScheduler(pruner, Config{Interval: 10 * time.Millisecond}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sched.Start(ctx) }()

	assert.Eventually(t, func() bool {
		return pruner.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)
}
