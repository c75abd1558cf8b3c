package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Leratobriget/LivePrediction-Matches/internal/dashboard"
	"github.com/Leratobriget/LivePrediction-Matches/internal/render"
	"github.com/Leratobriget/LivePrediction-Matches/internal/session"
	"github.com/go-chi/chi/v5"
)

// SignInRequest is the body of POST /api/v1/session. The password is
// accepted and ignored.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Index serves the HTML dashboard, or the sign-in page without a session
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	sess, err := s.sessions.Get(tokenFrom(r))
	if err != nil {
		if err := render.SignInPage(w); err != nil {
			s.logger.Error().Err(err).Msg("Failed to render sign-in page")
		}
		return
	}

	if err := render.Page(w, sess.Dashboard.View()); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render dashboard page")
	}
}

// CreateSession signs a user in from a JSON body or a form post
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
	} else {
		req.Email = r.FormValue("email")
		req.FullName = r.FormValue("full_name")
	}

	s.signIn(w, r, req.Email, req.FullName)
}

// CreateDemoSession signs in the demo account
func (s *Server) CreateDemoSession(w http.ResponseWriter, r *http.Request) {
	s.signIn(w, r, DemoEmail, demoName)
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request, email, fullName string) {
	sess, err := s.sessions.SignIn(email, fullName)
	if err != nil {
		if errors.Is(err, session.ErrInvalidEmail) {
			respondError(w, http.StatusBadRequest, "a valid email is required", err)
			return
		}
		respondError(w, http.StatusServiceUnavailable, "failed to sign in", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	if wantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": sess.Token,
		"user":  sess.User,
	})
}

// DeleteSession signs out and tears down the dashboard
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.SignOut(tokenFrom(r))

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	if wantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "no active session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDashboard returns every panel plus pending toasts
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, sessionFrom(r).Dashboard.View())
}

// GetPanel returns one rendered panel
func (s *Server) GetPanel(w http.ResponseWriter, r *http.Request) {
	panel, err := sessionFrom(r).Dashboard.Panel(chi.URLParam(r, "feed"))
	if err != nil {
		respondDashboardError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, panel)
}

// RefreshPanel refetches one feed and returns the new panel
func (s *Server) RefreshPanel(w http.ResponseWriter, r *http.Request) {
	d := sessionFrom(r).Dashboard
	feed := chi.URLParam(r, "feed")

	if err := d.Refresh(r.Context(), feed); err != nil {
		respondDashboardError(w, err)
		return
	}
	panel, err := d.Panel(feed)
	if err != nil {
		respondDashboardError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, panel)
}

// Subscribe handles an upsell click
func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request) {
	plan, err := sessionFrom(r).Dashboard.Subscribe(chi.URLParam(r, "plan"))
	if err != nil {
		respondDashboardError(w, err)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"plan":   plan,
		"status": "coming_soon",
	})
}

// GetNotifications drains the session's toasts
func (s *Server) GetNotifications(w http.ResponseWriter, r *http.Request) {
	toasts := sessionFrom(r).Dashboard.Notifications()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": toasts,
		"count":         len(toasts),
	})
}

func respondDashboardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUnknownFeed):
		respondError(w, http.StatusNotFound, "unknown feed", err)
	case errors.Is(err, dashboard.ErrUnknownPlan):
		respondError(w, http.StatusNotFound, "unknown plan", err)
	case errors.Is(err, dashboard.ErrTornDown):
		respondError(w, http.StatusGone, "session ended", err)
	default:
		respondError(w, http.StatusInternalServerError, "dashboard error", err)
	}
}
