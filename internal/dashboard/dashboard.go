package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/poller"
	"github.com/Leratobriget/LivePrediction-Matches/internal/render"
	"github.com/Leratobriget/LivePrediction-Matches/internal/view"
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/notifier"
	"github.com/Leratobriget/LivePrediction-Matches/provider"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultFetchTimeout bounds a single provider call
const DefaultFetchTimeout = 10 * time.Second

// Toast text
const (
	FailureTitle          = "Error"
	SubscriptionTitle     = "Subscription"
	MsgPredictionsFailed  = "Failed to load predictions"
	MsgLiveMatchesFailed  = "Failed to load live matches"
	MsgHistoryFailed      = "Failed to load prediction history"
	MsgProfileFailed      = "Failed to load profile"
	subscriptionComingFmt = "%s subscription feature coming soon!"
)

var (
	ErrUnknownFeed    = errors.New("unknown feed")
	ErrUnknownPlan    = errors.New("unknown plan")
	ErrAlreadyMounted = errors.New("dashboard already mounted")
	ErrTornDown       = errors.New("dashboard torn down")
)

// Options configures a Dashboard
type Options struct {
	LiveInterval time.Duration
	FetchTimeout time.Duration
	InboxSize    int
	Clock        func() time.Time
	Location     *time.Location
}

// Dashboard owns the four feeds of one signed-in user, the live match
// poller and the toast inbox
type Dashboard struct {
	user   models.User
	inbox  *notifier.Inbox
	opts   Options
	logger zerolog.Logger

	predictions *view.Feed[models.Prediction]
	live        *view.Feed[models.Match]
	history     *view.Feed[models.PredictionResult]
	profile     *view.Feed[models.Profile]
	poller      *poller.Poller

	mu       sync.Mutex
	cancel   context.CancelFunc
	mounted  bool
	tornDown bool
	loads    int // mount-time loads and refreshes still running
	idle     *sync.Cond
	teardown sync.Once
}

// New builds an unmounted dashboard. Failures go to the session inbox and
// to extra, which may be nil.
func New(user models.User, dp models.DataProvider, extra models.Notifier, opts Options) *Dashboard {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	d := &Dashboard{
		user:   user,
		inbox:  notifier.NewInbox(opts.InboxSize),
		opts:   opts,
		logger: log.With().Str("component", "dashboard").Str("user", user.Email).Logger(),
	}
	d.idle = sync.NewCond(&d.mu)

	var n models.Notifier = d.inbox
	if extra != nil {
		n = notifier.Multi{d.inbox, extra}
	}

	feedOpts := func(name, message string) view.Options {
		return view.Options{
			Name:           name,
			FailureTitle:   FailureTitle,
			FailureMessage: message,
			Notifier:       n,
			Clock:          opts.Clock,
		}
	}

	d.predictions = view.NewFeed[models.Prediction](dp.FetchPredictions, feedOpts(provider.FeedPredictions, MsgPredictionsFailed))
	d.live = view.NewFeed[models.Match](dp.FetchLiveMatches, feedOpts(provider.FeedLiveMatches, MsgLiveMatchesFailed))
	d.history = view.NewFeed[models.PredictionResult](dp.FetchPredictionHistory, feedOpts(provider.FeedHistory, MsgHistoryFailed))
	d.profile = view.NewFeed[models.Profile](fetchProfile(dp), feedOpts(provider.FeedProfile, MsgProfileFailed))
	d.poller = poller.New(provider.FeedLiveMatches, opts.LiveInterval, func(ctx context.Context) {
		d.load(ctx, d.live.Load)
	})

	return d
}

// fetchProfile adapts the single-profile call to a feed of at most one item.
// A user without a profile gets the empty feed, which renders the upsell.
func fetchProfile(dp models.DataProvider) view.FetchFunc[models.Profile] {
	return func(ctx context.Context) ([]models.Profile, error) {
		profile, err := dp.FetchProfile(ctx)
		if errors.Is(err, provider.ErrNotFound) {
			return []models.Profile{}, nil
		}
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return []models.Profile{}, nil
		}
		return []models.Profile{*profile}, nil
	}
}

// User returns the session identity
func (d *Dashboard) User() models.User {
	return d.user
}

func (d *Dashboard) load(ctx context.Context, fn func(context.Context)) {
	ctx, cancel := context.WithTimeout(ctx, d.opts.FetchTimeout)
	defer cancel()
	fn(ctx)
}

// Mount starts loading every feed and starts the live poller. It returns
// without waiting for the fetches; ctx bounds the dashboard's lifetime.
func (d *Dashboard) Mount(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tornDown {
		return ErrTornDown
	}
	if d.mounted {
		return ErrAlreadyMounted
	}

	ctx, cancel := context.WithCancel(ctx)
	if err := d.poller.Start(ctx); err != nil {
		cancel()
		return fmt.Errorf("start live poller: %w", err)
	}
	d.cancel = cancel
	d.mounted = true

	for _, fn := range []func(context.Context){d.predictions.Load, d.history.Load, d.profile.Load} {
		fn := fn
		d.loads++
		go func() {
			defer d.loadDone()
			d.load(ctx, fn)
		}()
	}

	d.logger.Info().Dur("live_interval", d.poller.Interval()).Msg("Dashboard mounted")
	return nil
}

// Refresh refetches one feed and waits for the result
func (d *Dashboard) Refresh(ctx context.Context, feed string) error {
	d.mu.Lock()
	if d.tornDown {
		d.mu.Unlock()
		return ErrTornDown
	}
	d.loads++
	d.mu.Unlock()
	defer d.loadDone()

	var fn func(context.Context)
	switch feed {
	case provider.FeedPredictions:
		fn = d.predictions.Load
	case provider.FeedLiveMatches:
		fn = d.live.Load
	case provider.FeedHistory:
		fn = d.history.Load
	case provider.FeedProfile:
		fn = d.profile.Load
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFeed, feed)
	}

	d.logger.Debug().Str("feed", feed).Msg("Refresh requested")
	d.load(ctx, fn)
	return nil
}

// Subscribe acknowledges an upsell click. Checkout is not available yet, so
// the user gets an informational toast.
func (d *Dashboard) Subscribe(planID string) (models.Plan, error) {
	plan, ok := models.FindPlan(planID)
	if !ok {
		return models.Plan{}, fmt.Errorf("%w: %s", ErrUnknownPlan, planID)
	}

	d.inbox.Notify(SubscriptionTitle, fmt.Sprintf(subscriptionComingFmt, plan.Name), models.SeverityInfo)
	d.logger.Info().Str("plan", plan.ID).Msg("Subscription requested")
	return plan, nil
}

// Notifications drains the toast inbox
func (d *Dashboard) Notifications() []models.Notification {
	return d.inbox.Drain()
}

// Panel renders one feed
func (d *Dashboard) Panel(feed string) (any, error) {
	loc := d.opts.Location
	switch feed {
	case provider.FeedPredictions:
		return render.Predictions(d.predictions.Snapshot(), loc), nil
	case provider.FeedLiveMatches:
		return render.LiveMatches(d.live.Snapshot(), loc), nil
	case provider.FeedHistory:
		return render.History(d.history.Snapshot(), loc), nil
	case provider.FeedProfile:
		return render.Profile(d.profile.Snapshot(), d.opts.Clock(), loc), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFeed, feed)
	}
}

// View renders the whole dashboard and drains pending toasts into it
func (d *Dashboard) View() render.Dashboard {
	now := d.opts.Clock()
	loc := d.opts.Location

	return render.Dashboard{
		User:               d.user,
		Predictions:        render.Predictions(d.predictions.Snapshot(), loc),
		Live:               render.LiveMatches(d.live.Snapshot(), loc),
		History:            render.History(d.history.Snapshot(), loc),
		Profile:            render.Profile(d.profile.Snapshot(), now, loc),
		Notifications:      d.inbox.Drain(),
		LiveRefreshSeconds: int(d.poller.Interval() / time.Second),
		RenderedAt:         now.In(loc).Format(time.RFC3339),
	}
}

// LiveTicks reports how many live fetches the poller has started
func (d *Dashboard) LiveTicks() int {
	return d.poller.Ticks()
}

// WaitIdle blocks until the mount-time loads and running refreshes finish.
// It may be called while Refresh calls are still arriving.
func (d *Dashboard) WaitIdle() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for d.loads > 0 {
		d.idle.Wait()
	}
}

func (d *Dashboard) loadDone() {
	d.mu.Lock()
	d.loads--
	if d.loads == 0 {
		d.idle.Broadcast()
	}
	d.mu.Unlock()
}

// Teardown stops the poller and discards any fetch still in flight. It is
// safe to call more than once.
func (d *Dashboard) Teardown() {
	d.teardown.Do(func() {
		d.mu.Lock()
		d.tornDown = true
		cancel := d.cancel
		d.mu.Unlock()

		d.predictions.Close()
		d.live.Close()
		d.history.Close()
		d.profile.Close()

		d.poller.Stop()
		if cancel != nil {
			cancel()
		}
		d.logger.Info().Int("live_ticks", d.poller.Ticks()).Msg("Dashboard torn down")
	})
}
