package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/cache"
	"github.com/Leratobriget/LivePrediction-Matches/internal/config"
	"github.com/Leratobriget/LivePrediction-Matches/internal/database"
	"github.com/Leratobriget/LivePrediction-Matches/internal/payment"
	platformhttp "github.com/Leratobriget/LivePrediction-Matches/internal/platform/http"
	"github.com/Leratobriget/LivePrediction-Matches/internal/session"
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/provider"
	"github.com/Leratobriget/LivePrediction-Matches/provider/mock"
	"github.com/Leratobriget/LivePrediction-Matches/provider/remote"
	"github.com/rs/zerolog/log"
)

// connect opens the services the configuration asks for. A Redis outage
// only disables caching; every other failure is fatal.
func connect(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	deps := &dependencies{}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	switch cfg.DataSource {
	case config.SourcePostgres:
		db, err := database.New(connectCtx, database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		deps.db = db
		log.Info().Str("host", cfg.DBHost).Str("db", cfg.DBName).Msg("Connected to PostgreSQL")

	case config.SourceRemote:
		client := platformhttp.NewClient(platformhttp.ClientOptions{
			Timeout:        cfg.FetchTimeout,
			RequestsPerSec: cfg.RemoteRPS,
			MaxRetries:     cfg.RemoteMaxRetries,
		})
		deps.remote = remote.New(cfg.RemoteBaseURL, cfg.RemoteToken, client)
		log.Info().Str("base_url", cfg.RemoteBaseURL).Msg("Using remote data provider")
	}

	if cfg.RedisURL != "" {
		store, err := cache.Dial(connectCtx, cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, caching disabled")
		} else {
			deps.store = store
			log.Info().Msg("Connected to Redis")
		}
	}

	if cfg.StripeAPIKey != "" {
		var lookup payment.CustomerLookup
		if deps.db != nil {
			lookup = deps.db
		}
		deps.stripe = payment.NewStripeService(cfg.StripeAPIKey, cfg.StripeCustomerID, lookup)
		log.Info().Msg("Stripe profile source enabled")
	}

	return deps, nil
}

// factory builds each signed-in user's provider chain: base source, then
// the Stripe profile override, then the read-through cache
func (d *dependencies) factory(cfg *config.Config) session.ProviderFactory {
	return func(user models.User) models.DataProvider {
		var dp models.DataProvider
		switch {
		case d.db != nil:
			dp = d.db.ForUser(user.Email)
		case d.remote != nil:
			dp = d.remote
		default:
			dp = mock.New(mock.WithLatency(cfg.MockLatency))
		}

		if d.stripe != nil {
			dp = provider.WithProfile(dp, d.stripe.ForUser(user.Email))
		}
		if d.store != nil {
			dp = cache.New(dp, d.store, user.Email)
		}
		return dp
	}
}
