// Package goroutine runs long-lived background tasks, such as message
// consumers, with a concurrency cap and panic isolation.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/gobudget/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager gets a
// non-positive limit.
const DefaultMaxGoroutine int = 100

type Manager struct {
	slots chan struct{}
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
	errs   []error
}

func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = runtime.NumCPU() * DefaultMaxGoroutine
	}
	return &Manager{slots: make(chan struct{}, limit)}
}

// Go starts f unless the manager is full or already waited on, and reports
// whether it did. A task whose ctx is done before it starts is skipped.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		slog.WarnContext(ctx, "goroutine manager is closed, task dropped")
		return false
	}

	select {
	case g.slots <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, task dropped", "limit", cap(g.slots))
		return false
	}

	g.wg.Go(func() {
		defer func() { <-g.slots }()
		g.record(g.run(ctx, f))
	})
	return true
}

func (g *Manager) run(ctx context.Context, f func(ctx context.Context) error) (err error) {
	defer func() {
		if rvr := recover(); rvr != nil {
			var stack any = stacktrace.InternalPaths(debug.Stack())
			if frames, _ := stack.([]string); len(frames) == 0 {
				stack = string(debug.Stack())
			}
			slog.ErrorContext(ctx, "panic in background task", "because", rvr, "stack", stack)
		}
	}()

	if ctx.Err() != nil {
		slog.WarnContext(ctx, "background task canceled before start", "because", ctx.Err())
		return nil
	}
	return f(ctx)
}

func (g *Manager) record(err error) {
	if err == nil {
		return
	}
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Wait stops accepting tasks, waits for running ones and joins their errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
