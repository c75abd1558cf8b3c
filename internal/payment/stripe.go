package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/provider"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/subscription"
)

// CustomerLookup finds the Stripe customer linked to a user, "" when none is
type CustomerLookup interface {
	StripeCustomerID(ctx context.Context, email string) (string, error)
}

// Stripe API calls, swappable in tests
type (
	listSubscriptionsFunc func(ctx context.Context, customerID string) ([]*stripe.Subscription, error)
	findCustomerFunc      func(ctx context.Context, email string) (string, error)
)

// StripeService reads subscription state from Stripe. It never creates
// checkouts or charges.
type StripeService struct {
	DefaultCustomerID string
	lookup            CustomerLookup
	listSubscriptions listSubscriptionsFunc
	findCustomer      findCustomerFunc
	logger            zerolog.Logger
}

// NewStripeService creates a Stripe profile service. lookup may be nil.
func NewStripeService(apiKey, defaultCustomerID string, lookup CustomerLookup) *StripeService {
	// Initialize Stripe with the API key
	stripe.Key = apiKey

	return &StripeService{
		DefaultCustomerID: defaultCustomerID,
		lookup:            lookup,
		listSubscriptions: listStripeSubscriptions,
		findCustomer:      findStripeCustomer,
		logger:            log.With().Str("component", "stripe").Logger(),
	}
}

func listStripeSubscriptions(ctx context.Context, customerID string) ([]*stripe.Subscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(10)

	var subs []*stripe.Subscription
	iter := subscription.List(params)
	for iter.Next() {
		subs = append(subs, iter.Subscription())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func findStripeCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	return "", iter.Err()
}

// ForUser returns the profile source for one signed-in user
func (s *StripeService) ForUser(email string) provider.ProfileSource {
	return &profileSource{service: s, email: email}
}

func (s *StripeService) customerID(ctx context.Context, email string) (string, error) {
	if s.lookup != nil {
		id, err := s.lookup.StripeCustomerID(ctx, email)
		if err != nil {
			return "", fmt.Errorf("looking up customer: %w", err)
		}
		if id != "" {
			return id, nil
		}
	}
	if s.DefaultCustomerID != "" {
		return s.DefaultCustomerID, nil
	}
	if email == "" {
		return "", nil
	}
	id, err := s.findCustomer(ctx, email)
	if err != nil {
		return "", fmt.Errorf("searching customer: %w", err)
	}
	return id, nil
}

type profileSource struct {
	service *StripeService
	email   string
}

// FetchProfile implements provider.ProfileSource
func (p *profileSource) FetchProfile(ctx context.Context) (*models.Profile, error) {
	s := p.service

	customerID, err := s.customerID(ctx, p.email)
	if err != nil {
		return nil, provider.Wrap(provider.FeedProfile, err)
	}
	if customerID == "" {
		s.logger.Debug().Str("email", p.email).Msg("No Stripe customer, treating as free tier")
		return &models.Profile{ID: p.email, SubscriptionStatus: models.SubscriptionStatusInactive}, nil
	}

	subs, err := s.listSubscriptions(ctx, customerID)
	if err != nil {
		return nil, provider.Wrap(provider.FeedProfile, fmt.Errorf("listing subscriptions: %w", err))
	}

	profile := ProfileFromSubscriptions(customerID, subs)
	s.logger.Debug().Str("customer", customerID).Str("status", profile.SubscriptionStatus).Msg("Fetched Stripe profile")
	return &profile, nil
}

// ProfileFromSubscriptions maps the customer's most recent subscription to a
// profile: active or trialing is active until the current period ends,
// canceled is cancelled, anything else is inactive.
func ProfileFromSubscriptions(customerID string, subs []*stripe.Subscription) models.Profile {
	profile := models.Profile{
		ID:                 customerID,
		SubscriptionStatus: models.SubscriptionStatusInactive,
	}

	var latest *stripe.Subscription
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		if latest == nil || sub.Created > latest.Created {
			latest = sub
		}
	}
	if latest == nil {
		return profile
	}

	switch latest.Status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		profile.SubscriptionStatus = models.SubscriptionStatusActive
		if latest.CurrentPeriodEnd > 0 {
			end := time.Unix(latest.CurrentPeriodEnd, 0).UTC()
			profile.SubscriptionExpiresAt = &end
		}
	case stripe.SubscriptionStatusCanceled:
		profile.SubscriptionStatus = models.SubscriptionStatusCancelled
	default:
		profile.SubscriptionStatus = models.SubscriptionStatusInactive
	}
	return profile
}
