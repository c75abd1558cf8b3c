package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/dashboard"
	"github.com/Leratobriget/LivePrediction-Matches/models"
	"github.com/Leratobriget/LivePrediction-Matches/provider/mock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestManager(t *testing.T) (*Manager, *fakeClock, *[]models.User) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)}

	var mu sync.Mutex
	var users []models.User
	factory := func(u models.User) models.DataProvider {
		mu.Lock()
		users = append(users, u)
		mu.Unlock()
		return mock.New()
	}

	m := NewManager(context.Background(), factory, nil, Options{
		IdleTimeout: 10 * time.Minute,
		Clock:       clock.Now,
		Dashboard:   dashboard.Options{LiveInterval: time.Hour, Location: time.UTC},
	})
	t.Cleanup(m.Close)
	return m, clock, &users
}

func TestSignIn(t *testing.T) {
	m, _, users := newTestManager(t)

	s, err := m.SignIn("  Demo@Example.com ", "Demo User")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if s.Token == "" || s.User.ID == "" {
		t.Errorf("session missing identifiers: %+v", s)
	}
	if s.User.Email != "demo@example.com" || s.User.FullName != "Demo User" {
		t.Errorf("User = %+v", s.User)
	}
	if len(*users) != 1 || (*users)[0].Email != "demo@example.com" {
		t.Errorf("factory called with %+v", *users)
	}

	got, err := m.Get(s.Token)
	if err != nil || got != s {
		t.Errorf("Get() = %v, %v", got, err)
	}

	s.Dashboard.WaitIdle()
	if v := s.Dashboard.View(); len(v.Predictions.Cards) != 2 {
		t.Errorf("mounted dashboard has %d predictions, want 2", len(v.Predictions.Cards))
	}
}

func TestSignInRejectsBadEmail(t *testing.T) {
	m, _, _ := newTestManager(t)

	for _, email := range []string{"", "   ", "not-an-email"} {
		if _, err := m.SignIn(email, ""); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("SignIn(%q) error = %v, want %v", email, err, ErrInvalidEmail)
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestSignOut(t *testing.T) {
	m, _, _ := newTestManager(t)

	s, err := m.SignIn("demo@example.com", "")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if err := m.SignOut(s.Token); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if _, err := m.Get(s.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after sign-out error = %v, want %v", err, ErrNotFound)
	}
	if err := m.SignOut(s.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("second SignOut() error = %v, want %v", err, ErrNotFound)
	}
	if err := s.Dashboard.Refresh(context.Background(), "history"); !errors.Is(err, dashboard.ErrTornDown) {
		t.Errorf("dashboard still usable after sign-out: %v", err)
	}
}

func TestReap(t *testing.T) {
	m, clock, _ := newTestManager(t)

	idle, err := m.SignIn("idle@example.com", "")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	clock.Advance(6 * time.Minute)
	busy, err := m.SignIn("busy@example.com", "")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	clock.Advance(5 * time.Minute)
	if _, err := m.Get(busy.Token); err != nil {
		t.Fatalf("Get(busy) error = %v", err)
	}

	if n := m.Reap(clock.Now()); n != 1 {
		t.Fatalf("Reap() = %d, want 1", n)
	}
	if _, err := m.Get(idle.Token); !errors.Is(err, ErrNotFound) {
		t.Errorf("idle session survived: %v", err)
	}
	if _, err := m.Get(busy.Token); err != nil {
		t.Errorf("busy session reaped: %v", err)
	}
}

func TestCloseRejectsSignIn(t *testing.T) {
	m, _, _ := newTestManager(t)

	if _, err := m.SignIn("demo@example.com", ""); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	m.Close()

	if m.Len() != 0 {
		t.Errorf("Len() after Close = %d, want 0", m.Len())
	}
	if _, err := m.SignIn("demo@example.com", ""); !errors.Is(err, ErrClosed) {
		t.Errorf("SignIn() after Close error = %v, want %v", err, ErrClosed)
	}
}
