package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds the lib/pq connection string
func (p ConnectionParams) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// New creates a new database connection. The caller registers the
// "postgres" driver by importing github.com/lib/pq.
func New(ctx context.Context, params ConnectionParams) (*DB, error) {
	db, err := sql.Open("postgres", params.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// Check connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &DB{db}, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		sport TEXT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		league TEXT NOT NULL DEFAULT '',
		match_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		home_score INTEGER NOT NULL DEFAULT 0,
		away_score INTEGER NOT NULL DEFAULT 0,
		home_corners INTEGER NOT NULL DEFAULT 0,
		away_corners INTEGER NOT NULL DEFAULT 0,
		home_bookings INTEGER NOT NULL DEFAULT 0,
		away_bookings INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id TEXT PRIMARY KEY,
		match_id TEXT NOT NULL REFERENCES matches(id),
		predicted_outcome TEXT NOT NULL,
		odds DOUBLE PRECISION NOT NULL,
		confidence_score INTEGER NOT NULL,
		prediction_type TEXT NOT NULL,
		reasoning TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS prediction_results (
		id TEXT PRIMARY KEY,
		prediction_id TEXT NOT NULL REFERENCES predictions(id),
		actual_outcome TEXT NOT NULL,
		is_correct BOOLEAN NOT NULL,
		profit_loss DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		subscription_status TEXT NOT NULL DEFAULT 'inactive',
		subscription_expires_at TIMESTAMPTZ,
		stripe_customer_id TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_status ON matches(status)`,
	`CREATE INDEX IF NOT EXISTS idx_results_created_at ON prediction_results(created_at DESC)`,
}

// createTables creates the necessary tables if they don't exist
func createTables(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// CheckAndUpdateExpirations marks active profiles whose subscription has
// expired as inactive and returns how many were changed
func (db *DB) CheckAndUpdateExpirations(ctx context.Context) (int64, error) {
	res, err := db.ExecContext(ctx, `
		UPDATE profiles
		SET subscription_status = $1
		WHERE subscription_status = $2
		  AND subscription_expires_at IS NOT NULL
		  AND subscription_expires_at <= NOW()
	`, models.SubscriptionStatusInactive, models.SubscriptionStatusActive)
	if err != nil {
		return 0, fmt.Errorf("expire subscriptions: %w", err)
	}
	return res.RowsAffected()
}
