package main

import (
	"context"
	"os"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/config"
	"github.com/Leratobriget/LivePrediction-Matches/internal/database"
	"github.com/Leratobriget/LivePrediction-Matches/provider/mock"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.SetupLogging(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "demo@example.com"
	}

	if err := seed(ctx, db, email, cfg.StripeCustomerID); err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Str("email", email).Msg("Demo data loaded")
}

func seed(ctx context.Context, db *database.DB, email, stripeCustomerID string) error {
	src := mock.New()

	predictions, err := src.FetchPredictions(ctx)
	if err != nil {
		return err
	}
	for _, p := range predictions {
		if err := db.UpsertPrediction(ctx, p); err != nil {
			return err
		}
	}

	live, err := src.FetchLiveMatches(ctx)
	if err != nil {
		return err
	}
	for _, m := range live {
		if err := db.UpsertMatch(ctx, m); err != nil {
			return err
		}
	}

	results, err := src.FetchPredictionHistory(ctx)
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := db.UpsertResult(ctx, r); err != nil {
			return err
		}
	}

	profile, err := src.FetchProfile(ctx)
	if err != nil {
		return err
	}
	if err := db.UpsertProfile(ctx, email, *profile); err != nil {
		return err
	}
	if stripeCustomerID != "" {
		if err := db.SetStripeCustomerID(ctx, email, stripeCustomerID); err != nil {
			return err
		}
	}

	log.Info().
		Int("predictions", len(predictions)).
		Int("live_matches", len(live)).
		Int("results", len(results)).
		Msg("Seeded tables")
	return nil
}
