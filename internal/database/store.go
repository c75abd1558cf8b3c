package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Leratobriget/LivePrediction-Matches/models"
)

// UpsertMatch creates or replaces a match
func (db *DB) UpsertMatch(ctx context.Context, m models.Match) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO matches (
			id, sport, home_team, away_team, league, match_date, status,
			home_score, away_score, home_corners, away_corners, home_bookings, away_bookings, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (id)
		DO UPDATE SET
			sport = EXCLUDED.sport,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			league = EXCLUDED.league,
			match_date = EXCLUDED.match_date,
			status = EXCLUDED.status,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			home_corners = EXCLUDED.home_corners,
			away_corners = EXCLUDED.away_corners,
			home_bookings = EXCLUDED.home_bookings,
			away_bookings = EXCLUDED.away_bookings,
			updated_at = NOW()
	`,
		m.ID, m.Sport, m.HomeTeam, m.AwayTeam, m.League, m.MatchDate, m.Status,
		m.HomeScore, m.AwayScore, m.HomeCorners, m.AwayCorners, m.HomeBookings, m.AwayBookings)
	if err != nil {
		return fmt.Errorf("upsert match %s: %w", m.ID, err)
	}
	return nil
}

// UpsertPrediction stores a prediction and its match
func (db *DB) UpsertPrediction(ctx context.Context, p models.Prediction) error {
	if err := db.UpsertMatch(ctx, p.Match); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO predictions (
			id, match_id, predicted_outcome, odds, confidence_score, prediction_type, reasoning
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			match_id = EXCLUDED.match_id,
			predicted_outcome = EXCLUDED.predicted_outcome,
			odds = EXCLUDED.odds,
			confidence_score = EXCLUDED.confidence_score,
			prediction_type = EXCLUDED.prediction_type,
			reasoning = EXCLUDED.reasoning
	`,
		p.ID, p.Match.ID, p.PredictedOutcome, p.Odds, p.ConfidenceScore, p.PredictionType,
		sql.NullString{String: p.Reasoning, Valid: p.Reasoning != ""})
	if err != nil {
		return fmt.Errorf("upsert prediction %s: %w", p.ID, err)
	}
	return nil
}

// UpsertResult stores a settled prediction together with its prediction and match
func (db *DB) UpsertResult(ctx context.Context, r models.PredictionResult) error {
	if err := db.UpsertPrediction(ctx, r.Prediction); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO prediction_results (
			id, prediction_id, actual_outcome, is_correct, profit_loss, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			prediction_id = EXCLUDED.prediction_id,
			actual_outcome = EXCLUDED.actual_outcome,
			is_correct = EXCLUDED.is_correct,
			profit_loss = EXCLUDED.profit_loss,
			created_at = EXCLUDED.created_at
	`, r.ID, r.Prediction.ID, r.ActualOutcome, r.IsCorrect, r.ProfitLoss, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert result %s: %w", r.ID, err)
	}
	return nil
}

// UpsertProfile creates or replaces the profile for email
func (db *DB) UpsertProfile(ctx context.Context, email string, p models.Profile) error {
	var expiresAt sql.NullTime
	if p.SubscriptionExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *p.SubscriptionExpiresAt, Valid: true}
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, subscription_status, subscription_expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email)
		DO UPDATE SET
			subscription_status = EXCLUDED.subscription_status,
			subscription_expires_at = EXCLUDED.subscription_expires_at
	`, p.ID, email, p.SubscriptionStatus, expiresAt)
	if err != nil {
		return fmt.Errorf("upsert profile %s: %w", email, err)
	}
	return nil
}

// SetStripeCustomerID links a profile to its Stripe customer
func (db *DB) SetStripeCustomerID(ctx context.Context, email, customerID string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE profiles
		SET stripe_customer_id = $1
		WHERE email = $2
	`, customerID, email)
	if err != nil {
		return fmt.Errorf("set stripe customer for %s: %w", email, err)
	}
	return nil
}

// StripeCustomerID returns the Stripe customer linked to email, or "" when none is
func (db *DB) StripeCustomerID(ctx context.Context, email string) (string, error) {
	var customerID sql.NullString

	err := db.QueryRowContext(ctx, `
		SELECT stripe_customer_id
		FROM profiles
		WHERE email = $1
	`, email).Scan(&customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	if customerID.Valid {
		return customerID.String, nil
	}
	return "", nil
}
