package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLiveInterval is the refresh period for live match scores
const DefaultLiveInterval = 30 * time.Second

// ErrAlreadyStarted is returned when Start is called on a running poller
var ErrAlreadyStarted = errors.New("poller already started")

// FetchFunc performs one refresh. It must honour ctx cancellation.
type FetchFunc func(ctx context.Context)

// Poller invokes a fetch immediately and then once per interval until stopped.
// A tick never waits for the previous fetch: the earlier in-flight fetch has
// its context cancelled and the new one takes over.
type Poller struct {
	name     string
	interval time.Duration
	fetch    FetchFunc
	logger   zerolog.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	inflight context.CancelFunc
	done     chan struct{}
	ticks    int
}

// New creates a poller; a non-positive interval falls back to DefaultLiveInterval
func New(name string, interval time.Duration, fetch FetchFunc) *Poller {
	if interval <= 0 {
		interval = DefaultLiveInterval
	}
	return &Poller{
		name:     name,
		interval: interval,
		fetch:    fetch,
		logger:   log.With().Str("component", "poller").Str("feed", name).Logger(),
	}
}

// Interval returns the configured polling period
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start launches the polling loop. It returns immediately.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return ErrAlreadyStarted
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(loopCtx, p.done)
	p.logger.Debug().Dur("interval", p.interval).Msg("Poller started")
	return nil
}

// Stop halts the loop and cancels any in-flight fetch. Once Stop returns no
// further fetch is started. Safe to call more than once.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	p.mu.Lock()
	if p.inflight != nil {
		p.inflight()
		p.inflight = nil
	}
	p.mu.Unlock()
	p.logger.Debug().Int("ticks", p.Ticks()).Msg("Poller stopped")
}

// Ticks returns how many fetches have been started
func (p *Poller) Ticks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ticks
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Do initial poll
	p.trigger(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Stop may have raced with the tick
			if ctx.Err() != nil {
				return
			}
			p.trigger(ctx)
		}
	}
}

// trigger cancels the previous in-flight fetch and starts a new one
func (p *Poller) trigger(ctx context.Context) {
	fetchCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if p.inflight != nil {
		p.inflight()
	}
	p.inflight = cancel
	p.ticks++
	p.mu.Unlock()

	go func() {
		defer cancel()
		p.fetch(fetchCtx)
	}()
}
