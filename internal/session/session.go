// Package session tracks signed-in users and the dashboard each one owns
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/dashboard"
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultIdleTimeout is how long an untouched session survives
const DefaultIdleTimeout = 30 * time.Minute

var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidEmail = errors.New("invalid email")
	ErrClosed       = errors.New("session manager closed")
)

// ProviderFactory builds the data provider scoped to one user
type ProviderFactory func(user models.User) models.DataProvider

// Session is one signed-in user and their mounted dashboard
type Session struct {
	Token     string
	User      models.User
	Dashboard *dashboard.Dashboard
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
}

// LastActive returns when the session was last used
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

// Options configures a Manager
type Options struct {
	IdleTimeout time.Duration
	Dashboard   dashboard.Options
	Clock       func() time.Time
}

// Manager owns every live session. Dashboards are mounted on a context
// derived from the root passed to NewManager, so they outlive the request
// that signed the user in.
type Manager struct {
	root     context.Context
	factory  ProviderFactory
	notifier models.Notifier
	opts     Options
	logger   zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewManager creates a manager. notifier receives every dashboard failure in
// addition to the session inbox and may be nil.
func NewManager(root context.Context, factory ProviderFactory, notifier models.Notifier, opts Options) *Manager {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Dashboard.Clock == nil {
		opts.Dashboard.Clock = opts.Clock
	}
	return &Manager{
		root:     root,
		factory:  factory,
		notifier: notifier,
		opts:     opts,
		logger:   log.With().Str("component", "session").Logger(),
		sessions: make(map[string]*Session),
	}
}

// SignIn creates a session for email and mounts its dashboard. There is no
// credential check.
func (m *Manager) SignIn(email, fullName string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	m.mu.Unlock()

	now := m.opts.Clock()
	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: strings.TrimSpace(fullName),
	}

	d := dashboard.New(user, m.factory(user), m.notifier, m.opts.Dashboard)
	if err := d.Mount(m.root); err != nil {
		d.Teardown()
		return nil, fmt.Errorf("mount dashboard: %w", err)
	}

	s := &Session{
		Token:      uuid.NewString(),
		User:       user,
		Dashboard:  d,
		CreatedAt:  now,
		lastActive: now,
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		d.Teardown()
		return nil, ErrClosed
	}
	m.sessions[s.Token] = s
	m.mu.Unlock()

	m.logger.Info().Str("user", email).Msg("User signed in")
	return s, nil
}

// Get returns the session for token and marks it active
func (m *Manager) Get(token string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[token]
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(m.opts.Clock())
	return s, nil
}

// SignOut removes the session and tears down its dashboard
func (m *Manager) SignOut(token string) error {
	m.mu.Lock()
	s, ok := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	s.Dashboard.Teardown()
	m.logger.Info().Str("user", s.User.Email).Msg("User signed out")
	return nil
}

// Reap tears down sessions idle for longer than the idle timeout and
// returns how many were removed
func (m *Manager) Reap(now time.Time) int {
	var expired []*Session

	m.mu.Lock()
	for token, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.opts.IdleTimeout {
			expired = append(expired, s)
			delete(m.sessions, token)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Dashboard.Teardown()
		m.logger.Info().Str("user", s.User.Email).Msg("Idle session expired")
	}
	return len(expired)
}

// RunReaper calls Reap every interval until ctx is done
func (m *Manager) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Reap(m.opts.Clock()); n > 0 {
				m.logger.Debug().Int("expired", n).Msg("Reaper pass finished")
			}
		}
	}
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close tears down every session and rejects further sign-ins
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Dashboard.Teardown()
	}
	m.logger.Info().Int("sessions", len(sessions)).Msg("Session manager closed")
}
