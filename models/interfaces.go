package models

import "context"

// DataProvider supplies every feed shown on the dashboard
type DataProvider interface {
	FetchPredictions(ctx context.Context) ([]Prediction, error)
	FetchLiveMatches(ctx context.Context) ([]Match, error)
	FetchPredictionHistory(ctx context.Context) ([]PredictionResult, error)
	FetchProfile(ctx context.Context) (*Profile, error)
}

// Notifier surfaces status and error messages to the user. Implementations
// must not block the caller.
type Notifier interface {
	Notify(title, message string, severity Severity)
}
