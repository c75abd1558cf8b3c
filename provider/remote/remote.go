// Package remote reads dashboard data from a REST backend
package remote

import (
	"context"
	"errors"
	"net/http"
	"strings"

	platformhttp "github.com/Leratobriget/LivePrediction-Matches/internal/platform/http"
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/provider"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Endpoint paths relative to the base URL
const (
	PathPredictions = "/predictions"
	PathLiveMatches = "/matches/live"
	PathHistory     = "/results"
	PathProfile     = "/profile"
)

// Provider implements models.DataProvider over HTTP
type Provider struct {
	baseURL string
	token   string
	client  *platformhttp.Client
	logger  zerolog.Logger
}

// New creates a remote provider. token, when set, is sent as a bearer token.
func New(baseURL, token string, client *platformhttp.Client) *Provider {
	if client == nil {
		client = platformhttp.NewClient(platformhttp.ClientOptions{})
	}
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
		logger:  log.With().Str("component", "remote_provider").Logger(),
	}
}

func (p *Provider) get(ctx context.Context, feed, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return provider.Wrap(feed, err)
	}
	req.Header.Set("Accept", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.DoRequest(ctx, req)
	if err != nil {
		var statusErr *platformhttp.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			err = provider.ErrNotFound
		}
		return provider.Wrap(feed, err)
	}
	defer resp.Body.Close()

	if err := decode(resp, out); err != nil {
		p.logger.Error().Err(err).Str("feed", feed).Msg("Error parsing JSON")
		return provider.Wrap(feed, err)
	}
	p.logger.Debug().Str("feed", feed).Msg("Fetched feed")
	return nil
}

// FetchPredictions implements models.DataProvider
func (p *Provider) FetchPredictions(ctx context.Context) ([]models.Prediction, error) {
	var out []models.Prediction
	if err := p.get(ctx, provider.FeedPredictions, PathPredictions, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchLiveMatches implements models.DataProvider
func (p *Provider) FetchLiveMatches(ctx context.Context) ([]models.Match, error) {
	var out []models.Match
	if err := p.get(ctx, provider.FeedLiveMatches, PathLiveMatches, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchPredictionHistory implements models.DataProvider
func (p *Provider) FetchPredictionHistory(ctx context.Context) ([]models.PredictionResult, error) {
	var out []models.PredictionResult
	if err := p.get(ctx, provider.FeedHistory, PathHistory, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchProfile implements models.DataProvider
func (p *Provider) FetchProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := p.get(ctx, provider.FeedProfile, PathProfile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
