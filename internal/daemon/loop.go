// Package daemon hosts the toolkit tree on a single goroutine and serialises
// work posted from other goroutines (control server, output watchers, config
// reloads) onto it.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var (
	// ErrStopped is returned for work posted after the loop stopped.
	ErrStopped = errors.New("loop stopped")
	// ErrPanicked is returned by Call when the function panicked.
	ErrPanicked = errors.New("task panicked")
)

// Loop runs posted functions one at a time on the goroutine calling Run.
// Post never blocks, so functions running on the loop may post follow-up
// work.
type Loop struct {
	logger *slog.Logger

	mu      sync.Mutex
	queue   []func()
	stopped bool
	wake    chan struct{}
	done    chan struct{}
}

// NewLoop creates a loop. Work may be posted before Run starts.
func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Post queues fn to run on the loop.
func (l *Loop) Post(fn func()) error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return ErrStopped
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Call runs fn on the loop and waits for its result.
func (l *Loop) Call(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("%w: %v", ErrPanicked, r)
				panic(r)
			}
		}()
		result <- fn()
	}
	if err := l.Post(task); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// The loop may have run fn just before stopping.
		select {
		case err := <-result:
			return err
		default:
			return ErrStopped
		}
	}
}

// Run executes posted work until ctx is cancelled. Work still queued at
// that point is dropped.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("loop started")
	defer func() {
		l.mu.Lock()
		l.stopped = true
		dropped := len(l.queue)
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
		l.logger.Info("loop stopped", "dropped", dropped)
	}()

	for {
		for {
			fn := l.next()
			if fn == nil {
				break
			}
			l.run(fn)
			if ctx.Err() != nil {
				return
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

// run executes one task. A panicking task is logged and the loop goes on.
func (l *Loop) run(fn func()) {
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("loop task panic recovered", "error", fmt.Sprint(err))
		}
	}()
	fn()
}
