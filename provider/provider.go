package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leratobriget/LivePrediction-Matches/models"
)

// Feed names used in errors, logs, cache keys and URLs
const (
	FeedPredictions = "predictions"
	FeedLiveMatches = "live"
	FeedHistory     = "history"
	FeedProfile     = "profile"
)

// Feeds lists every feed in display order
var Feeds = []string{FeedPredictions, FeedLiveMatches, FeedHistory, FeedProfile}

// ErrNotFound is returned when a provider has no profile for the session
var ErrNotFound = errors.New("not found")

// FetchError is the single failure kind of a data provider
type FetchError struct {
	Feed string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Feed, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Wrap returns err as a FetchError for feed. Nil stays nil and an existing
// FetchError is returned unchanged.
func Wrap(feed string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &FetchError{Feed: feed, Err: err}
}

// ProfileSource answers profile lookups separately from the rest of the data
type ProfileSource interface {
	FetchProfile(ctx context.Context) (*models.Profile, error)
}

type withProfile struct {
	models.DataProvider
	profiles ProfileSource
}

// WithProfile serves profiles from src and everything else from base
func WithProfile(base models.DataProvider, src ProfileSource) models.DataProvider {
	if src == nil {
		return base
	}
	return &withProfile{DataProvider: base, profiles: src}
}

func (w *withProfile) FetchProfile(ctx context.Context) (*models.Profile, error) {
	return w.profiles.FetchProfile(ctx)
}
