package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/provider"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TTL constants
const (
	LiveMatchesTTL = 20 * time.Second
	DefaultTTL     = 5 * time.Minute
)

// Provider is a read-through cache in front of another DataProvider.
// Cache failures are logged and never surface to the caller.
type Provider struct {
	next   models.DataProvider
	store  Store
	scope  string
	logger zerolog.Logger
}

// New wraps next. scope separates per-user entries such as the profile.
func New(next models.DataProvider, store Store, scope string) *Provider {
	return &Provider{
		next:   next,
		store:  store,
		scope:  scope,
		logger: log.With().Str("component", "cache").Logger(),
	}
}

// Key returns the cache key for a feed
func Key(feed, scope string) string {
	if feed == provider.FeedProfile && scope != "" {
		return fmt.Sprintf("dashboard:%s:%s", feed, scope)
	}
	return "dashboard:" + feed
}

func readThrough[T any](ctx context.Context, p *Provider, feed string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	key := Key(feed, p.scope)

	data, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}
	if ok {
		var cached T
		decodeErr := json.Unmarshal(data, &cached)
		if decodeErr == nil {
			p.logger.Debug().Str("key", key).Msg("Cache hit")
			return cached, nil
		}
		p.logger.Warn().Err(decodeErr).Str("key", key).Msg("Discarding undecodable cache entry")
	}

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	data, err = json.Marshal(value)
	if err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("Cache encode failed")
		return value, nil
	}
	if err := p.store.Set(ctx, key, data, ttl); err != nil {
		p.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return value, nil
}

// FetchPredictions implements models.DataProvider
func (p *Provider) FetchPredictions(ctx context.Context) ([]models.Prediction, error) {
	return readThrough(ctx, p, provider.FeedPredictions, DefaultTTL, p.next.FetchPredictions)
}

// FetchLiveMatches implements models.DataProvider
func (p *Provider) FetchLiveMatches(ctx context.Context) ([]models.Match, error) {
	return readThrough(ctx, p, provider.FeedLiveMatches, LiveMatchesTTL, p.next.FetchLiveMatches)
}

// FetchPredictionHistory implements models.DataProvider
func (p *Provider) FetchPredictionHistory(ctx context.Context) ([]models.PredictionResult, error) {
	return readThrough(ctx, p, provider.FeedHistory, DefaultTTL, p.next.FetchPredictionHistory)
}

// FetchProfile implements models.DataProvider
func (p *Provider) FetchProfile(ctx context.Context) (*models.Profile, error) {
	return readThrough(ctx, p, provider.FeedProfile, DefaultTTL, p.next.FetchProfile)
}
