package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/cache"
	"github.com/Leratobriget/LivePrediction-Matches/internal/config"
	"github.com/Leratobriget/LivePrediction-Matches/internal/dashboard"
	"github.com/Leratobriget/LivePrediction-Matches/internal/database"
	"github.com/Leratobriget/LivePrediction-Matches/internal/payment"
	"github.com/Leratobriget/LivePrediction-Matches/internal/server"
	"github.com/Leratobriget/LivePrediction-Matches/internal/session"
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/notifier"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	config.SetupLogging(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	deps, err := connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer deps.Close()

	notifiers := notifier.Multi{notifier.NewLog()}
	if cfg.TelegramEnabled() {
		tg, err := notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramDestructiveOnly)
		if err != nil {
			log.Error().Err(err).Msg("Telegram notifications disabled")
		} else {
			notifiers = append(notifiers, tg)
			defer tg.Wait()
		}
	}

	sessions := session.NewManager(ctx, deps.factory(cfg), notifiers, session.Options{
		IdleTimeout: cfg.SessionIdleTimeout,
		Dashboard: dashboard.Options{
			LiveInterval: cfg.LivePollInterval,
			FetchTimeout: cfg.FetchTimeout,
		},
	})
	defer sessions.Close()

	go sessions.RunReaper(ctx, time.Minute)
	if deps.db != nil {
		go checkExpiredSubscriptions(ctx, deps.db, cfg.ExpiryCheckPeriod)
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: server.New(sessions, server.Options{
			CORSOrigins: cfg.CORSOrigins,
			Checks:      deps.healthChecks(),
		}).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("data_source", cfg.DataSource).
			Dur("live_poll_interval", cfg.LivePollInterval).
			Bool("cache", deps.store != nil).
			Bool("stripe", deps.stripe != nil).
			Msg("Dashboard server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server error")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}

// checkExpiredSubscriptions runs periodically to update expired subscriptions
func checkExpiredSubscriptions(ctx context.Context, db *database.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := db.CheckAndUpdateExpirations(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Error checking expired subscriptions")
				continue
			}
			if n > 0 {
				log.Info().Int64("expired", n).Msg("Expired subscriptions deactivated")
			}
		}
	}
}

// dependencies are the optional backing services selected by configuration
type dependencies struct {
	db     *database.DB
	store  *cache.RedisStore
	stripe *payment.StripeService
	remote models.DataProvider
}

func (d *dependencies) Close() {
	if d.store != nil {
		d.store.Close()
	}
	if d.db != nil {
		d.db.Close()
	}
}

func (d *dependencies) healthChecks() map[string]server.HealthCheck {
	checks := make(map[string]server.HealthCheck)
	if d.db != nil {
		checks["database"] = d.db.PingContext
	}
	if d.store != nil {
		checks["redis"] = d.store.Ping
	}
	return checks
}
