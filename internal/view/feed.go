package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State of a feed's display
type State string

const (
	StateLoading   State = "loading"
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
	StateError     State = "error"
)

// FetchFunc loads the full collection for a feed
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Snapshot is a copy of a feed's display state at one point in time
type Snapshot[T any] struct {
	State     State
	Items     []T
	Stale     bool // Items come from an earlier fetch; the latest one failed or is still running
	LastError string
	UpdatedAt time.Time
}

// Options configures a Feed
type Options struct {
	Name string
	// FailureTitle and FailureMessage are sent to the notifier when a fetch fails
	FailureTitle   string
	FailureMessage string
	Notifier       models.Notifier
	Clock          func() time.Time
}

// Feed tracks one data feed through Loading, Empty, Populated and Error.
// Fetch failures are reported to the notifier and never returned. When a
// refetch fails, the last good collection stays on display.
type Feed[T any] struct {
	name     string
	fetch    FetchFunc[T]
	notifier models.Notifier
	title    string
	message  string
	now      func() time.Time
	logger   zerolog.Logger

	mu        sync.RWMutex
	state     State
	items     []T
	stale     bool
	lastError string
	updatedAt time.Time
	seq       uint64 // last Load started
	applied   uint64 // last Load whose result was stored
	pending   int
	closed    bool
}

// NewFeed creates a feed in the Loading state
func NewFeed[T any](fetch FetchFunc[T], opts Options) *Feed[T] {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.FailureTitle == "" {
		opts.FailureTitle = "Error"
	}
	if opts.FailureMessage == "" {
		opts.FailureMessage = "Failed to load " + opts.Name
	}
	return &Feed[T]{
		name:     opts.Name,
		fetch:    fetch,
		notifier: opts.Notifier,
		title:    opts.FailureTitle,
		message:  opts.FailureMessage,
		now:      opts.Clock,
		logger:   log.With().Str("component", "feed").Str("feed", opts.Name).Logger(),
		state:    StateLoading,
	}
}

// Name returns the feed name
func (f *Feed[T]) Name() string {
	return f.name
}

// Load fetches the collection and moves the feed to its next state.
// Resolutions that arrive after Close, or after a newer result was stored,
// are dropped. A cancelled Load does not discard an older one still running.
func (f *Feed[T]) Load(ctx context.Context) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.seq++
	seq := f.seq
	f.pending++
	// Keep the previous items visible while revalidating
	f.state = StateLoading
	f.stale = len(f.items) > 0
	f.mu.Unlock()

	items, err := f.fetch(ctx)

	f.mu.Lock()
	f.pending--
	if f.closed || seq <= f.applied {
		f.settle()
		f.mu.Unlock()
		f.logger.Debug().Uint64("seq", seq).Msg("Discarding superseded fetch result")
		return
	}

	if err != nil && errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// Cancelled by a newer poll or by teardown, not a user-visible failure
		f.settle()
		f.mu.Unlock()
		return
	}

	f.applied = seq
	if err != nil {
		f.lastError = err.Error()
		if len(f.items) > 0 {
			f.state = StatePopulated
			f.stale = true
		} else {
			f.state = StateError
			f.stale = false
		}
		f.mu.Unlock()

		f.logger.Error().Err(err).Msg("Fetch failed")
		if f.notifier != nil {
			f.notifier.Notify(f.title, f.message, models.SeverityDestructive)
		}
		return
	}

	f.items = append([]T(nil), items...)
	f.stale = false
	f.lastError = ""
	f.updatedAt = f.now()
	if len(f.items) == 0 {
		f.state = StateEmpty
	} else {
		f.state = StatePopulated
	}
	state := f.state
	f.mu.Unlock()

	f.logger.Debug().Int("count", len(items)).Str("state", string(state)).Msg("Feed updated")
}

// settle leaves Loading once no Load can still deliver a result, putting
// the feed back where the last stored result left it. Caller holds the lock.
func (f *Feed[T]) settle() {
	if f.closed || f.pending > 0 || f.state != StateLoading {
		return
	}
	switch {
	case len(f.items) > 0:
		f.state = StatePopulated
	case f.updatedAt.IsZero() && f.lastError == "":
		f.state = StateLoading
	case f.lastError != "":
		f.state = StateError
	default:
		f.state = StateEmpty
	}
	f.stale = f.lastError != "" && len(f.items) > 0
}

// Snapshot returns a copy of the current display state
func (f *Feed[T]) Snapshot() Snapshot[T] {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return Snapshot[T]{
		State:     f.state,
		Items:     append([]T(nil), f.items...),
		Stale:     f.stale,
		LastError: f.lastError,
		UpdatedAt: f.updatedAt,
	}
}

// State returns the current state
func (f *Feed[T]) State() State {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state
}

// Close tears the feed down; later fetch results are ignored
func (f *Feed[T]) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// Closed reports whether Close has been called
func (f *Feed[T]) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}
