package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/provider"
)

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

const matchColumns = `m.id, m.sport, m.home_team, m.away_team, m.league, m.match_date, m.status,
	m.home_score, m.away_score, m.home_corners, m.away_corners, m.home_bookings, m.away_bookings`

func matchDest(m *models.Match) []any {
	return []any{
		&m.ID, &m.Sport, &m.HomeTeam, &m.AwayTeam, &m.League, &m.MatchDate, &m.Status,
		&m.HomeScore, &m.AwayScore, &m.HomeCorners, &m.AwayCorners, &m.HomeBookings, &m.AwayBookings,
	}
}

func scanMatch(row scanner) (models.Match, error) {
	var m models.Match
	err := row.Scan(matchDest(&m)...)
	return m, err
}

func scanPrediction(row scanner) (models.Prediction, error) {
	var p models.Prediction
	var reasoning sql.NullString
	dest := append([]any{
		&p.ID, &p.PredictedOutcome, &p.Odds, &p.ConfidenceScore, &p.PredictionType, &reasoning,
	}, matchDest(&p.Match)...)

	if err := row.Scan(dest...); err != nil {
		return p, err
	}
	if reasoning.Valid {
		p.Reasoning = reasoning.String
	}
	return p, nil
}

func scanResult(row scanner) (models.PredictionResult, error) {
	var r models.PredictionResult
	var reasoning sql.NullString
	pred := &r.Prediction
	dest := append([]any{
		&r.ID, &r.ActualOutcome, &r.IsCorrect, &r.ProfitLoss, &r.CreatedAt,
		&pred.ID, &pred.PredictedOutcome, &pred.Odds, &pred.ConfidenceScore, &pred.PredictionType, &reasoning,
	}, matchDest(&pred.Match)...)

	if err := row.Scan(dest...); err != nil {
		return r, err
	}
	if reasoning.Valid {
		pred.Reasoning = reasoning.String
	}
	return r, nil
}

func scanProfile(row scanner) (*models.Profile, error) {
	var p models.Profile
	var expiresAt sql.NullTime
	if err := row.Scan(&p.ID, &p.SubscriptionStatus, &expiresAt); err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		p.SubscriptionExpiresAt = &t
	}
	return &p, nil
}

func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Provider serves the dashboard feeds for one user from PostgreSQL
type Provider struct {
	db    *DB
	email string
}

// ForUser returns a data provider whose profile feed belongs to email
func (db *DB) ForUser(email string) *Provider {
	return &Provider{db: db, email: email}
}

// FetchPredictions returns predictions for matches that have not finished
func (p *Provider) FetchPredictions(ctx context.Context) ([]models.Prediction, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT p.id, p.predicted_outcome, p.odds, p.confidence_score, p.prediction_type, p.reasoning,
			`+matchColumns+`
		FROM predictions p
		JOIN matches m ON m.id = p.match_id
		WHERE m.status <> $1
		ORDER BY m.match_date, p.id
	`, models.MatchStatusFinished)
	if err != nil {
		return nil, provider.Wrap(provider.FeedPredictions, err)
	}

	items, err := collect(rows, scanPrediction)
	return items, provider.Wrap(provider.FeedPredictions, err)
}

// FetchLiveMatches returns the matches currently in play
func (p *Provider) FetchLiveMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+matchColumns+`
		FROM matches m
		WHERE m.status = $1
		ORDER BY m.match_date, m.id
	`, models.MatchStatusLive)
	if err != nil {
		return nil, provider.Wrap(provider.FeedLiveMatches, err)
	}

	items, err := collect(rows, scanMatch)
	return items, provider.Wrap(provider.FeedLiveMatches, err)
}

// FetchPredictionHistory returns settled predictions, newest first
func (p *Provider) FetchPredictionHistory(ctx context.Context) ([]models.PredictionResult, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT r.id, r.actual_outcome, r.is_correct, r.profit_loss, r.created_at,
			p.id, p.predicted_outcome, p.odds, p.confidence_score, p.prediction_type, p.reasoning,
			`+matchColumns+`
		FROM prediction_results r
		JOIN predictions p ON p.id = r.prediction_id
		JOIN matches m ON m.id = p.match_id
		ORDER BY r.created_at DESC, r.id
	`)
	if err != nil {
		return nil, provider.Wrap(provider.FeedHistory, err)
	}

	items, err := collect(rows, scanResult)
	return items, provider.Wrap(provider.FeedHistory, err)
}

// FetchProfile returns the user's subscription profile
func (p *Provider) FetchProfile(ctx context.Context) (*models.Profile, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, subscription_status, subscription_expires_at
		FROM profiles
		WHERE email = $1
	`, p.email)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, provider.Wrap(provider.FeedProfile, fmt.Errorf("profile %s: %w", p.email, provider.ErrNotFound))
		}
		return nil, provider.Wrap(provider.FeedProfile, err)
	}
	return profile, nil
}
