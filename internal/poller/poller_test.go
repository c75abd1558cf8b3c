package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerFetchesImmediatelyAndOnEveryTick(t *testing.T) {
	const interval = 20 * time.Millisecond
	var calls atomic.Int32

	p := New("live", interval, func(ctx context.Context) {
		calls.Add(1)
	})
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer p.Stop()

	time.Sleep(3*interval + interval/2)

	if got := calls.Load(); got < 3 {
		t.Errorf("fetch called %d times in 3 intervals, want at least 3", got)
	}
}

func TestPollerNoFetchAfterStop(t *testing.T) {
	const interval = 100 * time.Millisecond
	var calls atomic.Int32
	first := make(chan struct{}, 1)

	p := New("live", interval, func(ctx context.Context) {
		calls.Add(1)
		select {
		case first <- struct{}{}:
		default:
		}
	})
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case <-first:
	case <-time.After(time.Second):
		t.Fatal("initial fetch was not invoked")
	}
	p.Stop()

	time.Sleep(3 * interval)

	if got := calls.Load(); got != 1 {
		t.Errorf("fetch called %d times, want 1 (no calls after teardown)", got)
	}
	if got := p.Ticks(); got != 1 {
		t.Errorf("Ticks() = %d, want 1", got)
	}
}

func TestPollerCancelsPreviousInFlightFetch(t *testing.T) {
	const interval = 15 * time.Millisecond
	cancelled := make(chan struct{}, 8)
	var calls atomic.Int32

	p := New("live", interval, func(ctx context.Context) {
		n := calls.Add(1)
		if n == 1 {
			// Hang until the next tick supersedes this fetch
			<-ctx.Done()
			cancelled <- struct{}{}
		}
	})
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer p.Stop()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("first fetch was not cancelled by the next tick")
	}
}

func TestPollerStopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := New("live", 10*time.Millisecond, func(ctx context.Context) {})
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()
	p.Stop()

	after := p.Ticks()
	time.Sleep(40 * time.Millisecond)
	if got := p.Ticks(); got != after {
		t.Errorf("fetch started after parent cancel: before=%d after=%d", after, got)
	}
}

func TestPollerStartTwice(t *testing.T) {
	p := New("live", time.Hour, func(ctx context.Context) {})
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer p.Stop()

	if err := p.Start(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want %v", err, ErrAlreadyStarted)
	}
}

func TestPollerDefaultInterval(t *testing.T) {
	p := New("live", 0, func(ctx context.Context) {})
	if p.Interval() != DefaultLiveInterval {
		t.Errorf("Interval() = %v, want %v", p.Interval(), DefaultLiveInterval)
	}
	// Stop on a never-started poller is a no-op
	p.Stop()
}
