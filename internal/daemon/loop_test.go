package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// drain runs queued work on the calling goroutine.
func drain(l *Loop) {
	for fn := l.next(); fn != nil; fn = l.next() {
		l.run(fn)
	}
}

func startLoop(t *testing.T) (*Loop, context.CancelFunc) {
	t.Helper()
	l := NewLoop(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-l.Done()
	})
	return l, cancel
}

func TestLoopRunsInPostOrder(t *testing.T) {
	l := NewLoop(discardLogger())
	var order []int
	for i := range 3 {
		if err := l.Post(func() {
			order = append(order, i)
			if i == 0 {
				// Work posted from the loop runs after what is queued.
				l.Post(func() { order = append(order, 10) })
			}
		}); err != nil {
			t.Fatalf("post: %v", err)
		}
	}
	drain(l)

	want := []int{0, 1, 2, 10}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestLoopCall(t *testing.T) {
	l, _ := startLoop(t)
	ctx := context.Background()

	got := 0
	if err := l.Call(ctx, func() error { got = 42; return nil }); err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected call to run, got %d", got)
	}

	sentinel := errors.New("boom")
	if err := l.Call(ctx, func() error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}

func TestLoopRecoversFromPanic(t *testing.T) {
	l, _ := startLoop(t)
	ctx := context.Background()

	err := l.Call(ctx, func() error { panic("bad task") })
	if !errors.Is(err, ErrPanicked) {
		t.Fatalf("expected ErrPanicked, got %v", err)
	}
	if err := l.Call(ctx, func() error { return nil }); err != nil {
		t.Fatalf("loop should keep running after a panic: %v", err)
	}
}

func TestLoopCallHonoursContext(t *testing.T) {
	l := NewLoop(discardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Nothing runs the loop.
	if err := l.Call(ctx, func() error { return nil }); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestLoopStop(t *testing.T) {
	l, cancel := startLoop(t)
	cancel()

	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("loop did not stop")
	}
	if err := l.Post(func() {}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if err := l.Call(context.Background(), func() error { return nil }); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped from Call, got %v", err)
	}
}
