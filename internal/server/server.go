// Package server exposes the dashboard over HTTP
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// CookieName carries the session token for browser clients
	CookieName = "session"
	// DemoEmail is the account used by the one-click demo sign-in
	DemoEmail = "demo@example.com"
	demoName  = "Demo User"

	requestTimeout = 30 * time.Second
)

// HealthCheck reports whether a backing service is reachable
type HealthCheck func(ctx context.Context) error

// Options configures the HTTP surface
type Options struct {
	CORSOrigins []string
	// Checks are run by /health, keyed by service name
	Checks map[string]HealthCheck
	// SecureCookies sets the Secure flag on the session cookie
	SecureCookies bool
}

// Server holds the HTTP handlers
type Server struct {
	sessions *session.Manager
	opts     Options
	logger   zerolog.Logger
}

// New creates a server backed by sessions
func New(sessions *session.Manager, opts Options) *Server {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{
		sessions: sessions,
		opts:     opts,
		logger:   log.With().Str("component", "http").Logger(),
	}
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.HealthCheck)
	r.Get("/", s.Index)

	r.Route("/api/v1", func(r chi.Router) {
		// Session
		r.Post("/session", s.CreateSession)
		r.Post("/session/demo", s.CreateDemoSession)
		r.Delete("/session", s.DeleteSession)
		r.Post("/session/signout", s.DeleteSession)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Get("/dashboard", s.GetDashboard)
			r.Get("/panels/{feed}", s.GetPanel)
			r.Post("/panels/{feed}/refresh", s.RefreshPanel)
			r.Post("/subscribe/{plan}", s.Subscribe)
			r.Get("/notifications", s.GetNotifications)
		})
	})

	return r
}

// HealthCheck runs the configured dependency checks
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for name, check := range s.opts.Checks {
		if err := check(ctx); err != nil {
			respondError(w, http.StatusServiceUnavailable, name+" unhealthy", err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"sessions":  s.sessions.Len(),
	})
}

type ctxKey struct{}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(tokenFrom(r))
		if err != nil {
			respondError(w, http.StatusUnauthorized, "sign in required", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(ctxKey{}).(*session.Session)
	return sess
}

// tokenFrom reads the bearer token, falling back to the session cookie
func tokenFrom(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// wantsHTML is true for browser form posts, which get redirected back to
// the page instead of a JSON body
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
