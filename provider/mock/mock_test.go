package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/aggregate"
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/provider"
)

var fixed = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func TestProviderData(t *testing.T) {
	p := New(WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	predictions, err := p.FetchPredictions(ctx)
	if err != nil {
		t.Fatalf("FetchPredictions() error = %v", err)
	}
	if len(predictions) != 2 {
		t.Fatalf("len(predictions) = %d, want 2", len(predictions))
	}
	if got := predictions[1].Match.MatchDate; !got.Equal(fixed.Add(time.Hour)) {
		t.Errorf("second match kicks off at %v, want one hour after now", got)
	}

	matches, err := p.FetchLiveMatches(ctx)
	if err != nil {
		t.Fatalf("FetchLiveMatches() error = %v", err)
	}
	for _, m := range matches {
		if m.Status != models.MatchStatusLive {
			t.Errorf("match %s status = %v, want live", m.ID, m.Status)
		}
	}

	history, err := p.FetchPredictionHistory(ctx)
	if err != nil {
		t.Fatalf("FetchPredictionHistory() error = %v", err)
	}
	stats := aggregate.Summarize(history)
	expected := models.SummaryStats{TotalPredictions: 2, CorrectPredictions: 1, TotalProfit: 45.5, WinRate: 50}
	if stats != expected {
		t.Errorf("Summarize(history) = %+v, want %+v", stats, expected)
	}

	profile, err := p.FetchProfile(ctx)
	if err != nil {
		t.Fatalf("FetchProfile() error = %v", err)
	}
	if profile.IsActive() || profile.SubscriptionExpiresAt != nil {
		t.Errorf("profile = %+v, want inactive without expiry", profile)
	}
}

func TestProviderFailures(t *testing.T) {
	p := New(WithFailures(provider.FeedLiveMatches))

	_, err := p.FetchLiveMatches(context.Background())
	if !errors.Is(err, ErrInjected) {
		t.Fatalf("FetchLiveMatches() error = %v, want %v", err, ErrInjected)
	}
	var fe *provider.FetchError
	if !errors.As(err, &fe) || fe.Feed != provider.FeedLiveMatches {
		t.Errorf("error %v is not a live FetchError", err)
	}

	if _, err := p.FetchPredictions(context.Background()); err != nil {
		t.Errorf("FetchPredictions() error = %v, want nil", err)
	}
}

func TestProviderLatencyHonoursContext(t *testing.T) {
	p := New(WithLatency(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.FetchPredictionHistory(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Error("fetch ignored context deadline")
	}
}
