// Package mock serves the built-in demo data set
package mock

import (
	"context"
	"errors"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/provider"
)

// ErrInjected is returned for feeds configured to fail
var ErrInjected = errors.New("injected failure")

// Provider returns fixed demo data. Match and result times are relative to
// the clock so the data always looks current.
type Provider struct {
	now     func() time.Time
	latency time.Duration
	failing map[string]bool
}

// Option configures a Provider
type Option func(*Provider)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// WithLatency delays every fetch; the delay honours ctx cancellation
func WithLatency(d time.Duration) Option {
	return func(p *Provider) {
		p.latency = d
	}
}

// WithFailures makes the named feeds fail with ErrInjected
func WithFailures(feeds ...string) Option {
	return func(p *Provider) {
		for _, f := range feeds {
			p.failing[f] = true
		}
	}
}

// New creates the demo provider
func New(opts ...Option) *Provider {
	p := &Provider{
		now:     time.Now,
		failing: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) wait(ctx context.Context, feed string) error {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	if p.failing[feed] {
		return provider.Wrap(feed, ErrInjected)
	}
	return nil
}

// FetchPredictions returns today's tips
func (p *Provider) FetchPredictions(ctx context.Context) ([]models.Prediction, error) {
	if err := p.wait(ctx, provider.FeedPredictions); err != nil {
		return nil, err
	}
	now := p.now()
	return []models.Prediction{
		{
			ID:               "1",
			PredictedOutcome: "Liverpool Win",
			Odds:             2.45,
			ConfidenceScore:  85,
			PredictionType:   models.PredictionTypeSafe,
			Reasoning:        "Liverpool has won 8 out of their last 10 home games. Strong attacking form with Salah and Mane in excellent condition.",
			Match: models.Match{
				ID:        "m1",
				Sport:     models.SportSoccer,
				HomeTeam:  "Liverpool",
				AwayTeam:  "Arsenal",
				League:    "Premier League",
				MatchDate: now,
				Status:    models.MatchStatusUpcoming,
			},
		},
		{
			ID:               "2",
			PredictedOutcome: "Over 2.5 Goals",
			Odds:             1.85,
			ConfidenceScore:  92,
			PredictionType:   models.PredictionTypeRisky,
			Reasoning:        "Both teams average over 2.5 goals per game in last 5 matches. High-scoring encounter expected.",
			Match: models.Match{
				ID:        "m2",
				Sport:     models.SportSoccer,
				HomeTeam:  "Manchester City",
				AwayTeam:  "Chelsea",
				League:    "Premier League",
				MatchDate: now.Add(time.Hour),
				Status:    models.MatchStatusUpcoming,
			},
		},
	}, nil
}

// FetchLiveMatches returns the matches in progress
func (p *Provider) FetchLiveMatches(ctx context.Context) ([]models.Match, error) {
	if err := p.wait(ctx, provider.FeedLiveMatches); err != nil {
		return nil, err
	}
	now := p.now()
	return []models.Match{
		{
			ID:           "1",
			Sport:        models.SportSoccer,
			HomeTeam:     "Real Madrid",
			AwayTeam:     "Barcelona",
			League:       "La Liga",
			MatchDate:    now,
			Status:       models.MatchStatusLive,
			HomeScore:    2,
			AwayScore:    1,
			HomeCorners:  6,
			AwayCorners:  4,
			HomeBookings: 2,
			AwayBookings: 3,
		},
		{
			ID:           "2",
			Sport:        models.SportBasketball,
			HomeTeam:     "Lakers",
			AwayTeam:     "Warriors",
			League:       "NBA",
			MatchDate:    now,
			Status:       models.MatchStatusLive,
			HomeScore:    89,
			AwayScore:    76,
			HomeBookings: 4,
			AwayBookings: 2,
		},
	}, nil
}

// FetchPredictionHistory returns settled predictions, newest first
func (p *Provider) FetchPredictionHistory(ctx context.Context) ([]models.PredictionResult, error) {
	if err := p.wait(ctx, provider.FeedHistory); err != nil {
		return nil, err
	}
	now := p.now()
	return []models.PredictionResult{
		{
			ID:            "1",
			ActualOutcome: "Liverpool Win",
			IsCorrect:     true,
			ProfitLoss:    145.50,
			CreatedAt:     now,
			Prediction: models.Prediction{
				ID:               "1",
				PredictedOutcome: "Liverpool Win",
				Odds:             2.45,
				ConfidenceScore:  85,
				PredictionType:   models.PredictionTypeSafe,
				Match: models.Match{
					ID:        "m1",
					Sport:     models.SportSoccer,
					HomeTeam:  "Liverpool",
					AwayTeam:  "Arsenal",
					Status:    models.MatchStatusFinished,
					HomeScore: 3,
					AwayScore: 1,
				},
			},
		},
		{
			ID:            "2",
			ActualOutcome: "Under 2.5 Goals",
			IsCorrect:     false,
			ProfitLoss:    -100.00,
			CreatedAt:     now.Add(-24 * time.Hour),
			Prediction: models.Prediction{
				ID:               "2",
				PredictedOutcome: "Over 2.5 Goals",
				Odds:             1.85,
				ConfidenceScore:  75,
				PredictionType:   models.PredictionTypeRisky,
				Match: models.Match{
					ID:        "m2",
					Sport:     models.SportSoccer,
					HomeTeam:  "Manchester City",
					AwayTeam:  "Chelsea",
					Status:    models.MatchStatusFinished,
					HomeScore: 1,
					AwayScore: 0,
				},
			},
		},
	}, nil
}

// FetchProfile returns a free-tier profile
func (p *Provider) FetchProfile(ctx context.Context) (*models.Profile, error) {
	if err := p.wait(ctx, provider.FeedProfile); err != nil {
		return nil, err
	}
	return &models.Profile{
		ID:                 "1",
		SubscriptionStatus: models.SubscriptionStatusInactive,
	}, nil
}
