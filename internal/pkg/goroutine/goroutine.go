// Package goroutine runs background work with a concurrency cap, panic
// recovery and a single Wait for shutdown.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/shandysiswandi/dinebite/internal/pkg/stacktrace"
	"go.uber.org/atomic"
)

// DefaultLimit is used when NewManager gets a non-positive limit.
const DefaultLimit = 64

// ErrPanic is recorded for a task that panicked.
var ErrPanic = errors.New("goroutine: task panicked")

// Manager tracks goroutines started through Go.
type Manager struct {
	wg      sync.WaitGroup
	state   sync.RWMutex
	slots   chan struct{}
	closed  atomic.Bool
	running atomic.Int64

	mu   sync.Mutex
	errs []error
}

// NewManager caps concurrent goroutines at limit. Values below one use
// DefaultLimit.
func NewManager(limit int) *Manager {
	if limit < 1 {
		limit = DefaultLimit
	}

	return &Manager{slots: make(chan struct{}, limit)}
}

// Go starts f unless the manager is closed or full. It reports whether f was
// started. Errors returned by f are collected for Wait.
func (m *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	m.state.RLock()
	defer m.state.RUnlock()

	if m.closed.Load() {
		slog.WarnContext(ctx, "goroutine manager closed, task dropped")
		return false
	}

	select {
	case m.slots <- struct{}{}:
	default:
		slog.WarnContext(ctx, "goroutine limit reached, task dropped", "limit", cap(m.slots))
		return false
	}

	m.running.Inc()
	m.wg.Go(func() {
		defer func() {
			if rvr := recover(); rvr != nil {
				slog.ErrorContext(ctx, "panic in goroutine", "panic", rvr, "stack", stacktrace.InternalPaths(debug.Stack()))
				m.record(ErrPanic)
			}
			m.running.Dec()
			<-m.slots
		}()

		if err := f(ctx); err != nil && !errors.Is(err, context.Canceled) {
			m.record(err)
		}
	})

	return true
}

// Running returns the number of tasks still executing.
func (m *Manager) Running() int64 {
	return m.running.Load()
}

// Wait refuses new tasks, blocks until running ones return and joins their
// errors.
func (m *Manager) Wait() error {
	m.state.Lock()
	m.closed.Store(true)
	m.state.Unlock()

	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	return errors.Join(m.errs...)
}

func (m *Manager) record(err error) {
	m.mu.Lock()
	m.errs = append(m.errs, err)
	m.mu.Unlock()
}
