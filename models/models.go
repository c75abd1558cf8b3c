package models

import (
	"time"
)

// Sport is an open enumeration: values outside the known set are kept as-is
// and rendered through the default branch.
type Sport string

const (
	SportSoccer     Sport = "soccer"
	SportBasketball Sport = "basketball"
	SportBaseball   Sport = "baseball"
	SportCricket    Sport = "cricket"
	SportOther      Sport = "other"
)

// MatchStatus is an open enumeration, see Sport.
type MatchStatus string

const (
	MatchStatusUpcoming MatchStatus = "upcoming"
	MatchStatusLive     MatchStatus = "live"
	MatchStatusFinished MatchStatus = "finished"
)

// PredictionType tells how aggressive a tip is
type PredictionType string

const (
	PredictionTypeSafe  PredictionType = "safe"
	PredictionTypeRisky PredictionType = "risky"
)

// Subscription status constants
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusInactive  = "inactive"
	SubscriptionStatusCancelled = "cancelled"
)

// Severity of a user-facing notification
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeverityDestructive Severity = "destructive"
)

// Match is a snapshot of a fixture as returned by one fetch. It is never
// patched in place; the next fetch replaces the whole collection.
type Match struct {
	ID           string      `json:"id"`
	Sport        Sport       `json:"sport"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	League       string      `json:"league"`
	MatchDate    time.Time   `json:"match_date"`
	Status       MatchStatus `json:"status"`
	HomeScore    int         `json:"home_score"`
	AwayScore    int         `json:"away_score"`
	HomeCorners  int         `json:"home_corners"`  // soccer only, not validated
	AwayCorners  int         `json:"away_corners"`  // soccer only, not validated
	HomeBookings int         `json:"home_bookings"` // soccer only, not validated
	AwayBookings int         `json:"away_bookings"` // soccer only, not validated
}

// Prediction is a tip for a single match
type Prediction struct {
	ID               string         `json:"id"`
	PredictedOutcome string         `json:"predicted_outcome"`
	Odds             float64        `json:"odds"`             // decimal odds, > 1.0 expected
	ConfidenceScore  int            `json:"confidence_score"` // 0-100
	PredictionType   PredictionType `json:"prediction_type"`
	Reasoning        string         `json:"reasoning"`
	Match            Match          `json:"match"` // read-only copy
}

// PredictionResult stores the settled outcome of a prediction
type PredictionResult struct {
	ID            string     `json:"id"`
	ActualOutcome string     `json:"actual_outcome"`
	IsCorrect     bool       `json:"is_correct"`
	ProfitLoss    float64    `json:"profit_loss"` // signed, full precision
	CreatedAt     time.Time  `json:"created_at"`
	Prediction    Prediction `json:"prediction"`
}

// SummaryStats is derived from a PredictionResult collection and never persisted
type SummaryStats struct {
	TotalPredictions   int     `json:"total_predictions"`
	CorrectPredictions int     `json:"correct_predictions"`
	TotalProfit        float64 `json:"total_profit"`
	WinRate            float64 `json:"win_rate"` // 0-100
}

// StreakStats holds the longest consecutive runs in a result history
type StreakStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Profile represents the subscriber's paywall state
type Profile struct {
	ID                    string     `json:"id"`
	SubscriptionStatus    string     `json:"subscription_status"`               // active, inactive, cancelled
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"` // nil means unlimited when active
}

// IsActive reports whether the profile has premium access
func (p Profile) IsActive() bool {
	return p.SubscriptionStatus == SubscriptionStatusActive
}

// User is the signed-in identity carried by a session
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// Notification is a user-facing status or error message
type Notification struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}
