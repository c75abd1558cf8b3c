package render

import (
	"strings"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/internal/aggregate"
	"github.com/Leratobriget/LivePrediction-Matches/internal/classify"
	"github.com/Leratobriget/LivePrediction-Matches/internal/view"
	"github.com/Leratobriget/LivePrediction-Matches/models"
)

// Empty-state messages
const (
	EmptyPredictions = "No active predictions available"
	EmptyLiveMatches = "No live matches at the moment"
	EmptyHistory     = "No prediction results available"
)

// Status describes how a panel should be drawn. Empty is true for both the
// empty and the failed state; Failed tells them apart for API clients.
type Status struct {
	State        view.State `json:"state"`
	Loading      bool       `json:"loading"`
	Empty        bool       `json:"empty"`
	Failed       bool       `json:"failed"`
	Stale        bool       `json:"stale"`
	EmptyMessage string     `json:"empty_message,omitempty"`
	UpdatedAt    string     `json:"updated_at,omitempty"`
}

func statusOf[T any](snap view.Snapshot[T], emptyMessage string, loc *time.Location) Status {
	st := Status{
		State:     snap.State,
		Stale:     snap.Stale,
		UpdatedAt: formatTime(snap.UpdatedAt, loc, time.RFC3339),
	}

	switch snap.State {
	case view.StateLoading:
		// Revalidation keeps the previous cards on screen
		st.Loading = len(snap.Items) == 0
	case view.StatePopulated:
	case view.StateError:
		st.Failed = true
		st.Empty = true
	default:
		st.Empty = true
	}
	if st.Empty {
		st.EmptyMessage = emptyMessage
	}
	return st
}

// PredictionCard is one tip on the predictions panel
type PredictionCard struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	Icon           string `json:"icon"`
	Outcome        string `json:"outcome"`
	Type           string `json:"type"`
	TypeStyle      string `json:"type_style"`
	Odds           string `json:"odds"`
	Confidence     int    `json:"confidence"`
	ConfidenceTier string `json:"confidence_tier"`
	MatchStatus    string `json:"match_status"`
	MatchStyle     string `json:"match_style"`
	Reasoning      string `json:"reasoning,omitempty"`
}

// PredictionsPanel is the "Today's Predictions" tab
type PredictionsPanel struct {
	Status
	Cards []PredictionCard `json:"cards"`
}

// Predictions renders the predictions feed
func Predictions(snap view.Snapshot[models.Prediction], loc *time.Location) PredictionsPanel {
	panel := PredictionsPanel{
		Status: statusOf(snap, EmptyPredictions, loc),
		Cards:  make([]PredictionCard, 0, len(snap.Items)),
	}
	if panel.Empty {
		return panel
	}

	for _, p := range snap.Items {
		m := p.Match
		panel.Cards = append(panel.Cards, PredictionCard{
			ID:             p.ID,
			Title:          m.HomeTeam + " vs " + m.AwayTeam,
			Subtitle:       SportLabel(m.Sport) + " • " + formatTime(m.MatchDate, loc, DateTimeLayout),
			Icon:           classify.SportIcon(m.Sport),
			Outcome:        p.PredictedOutcome,
			Type:           strings.ToUpper(string(p.PredictionType)),
			TypeStyle:      classify.PredictionType(p.PredictionType),
			Odds:           Odds(p.Odds),
			Confidence:     p.ConfidenceScore,
			ConfidenceTier: classify.ConfidenceTier(p.ConfidenceScore),
			MatchStatus:    string(m.Status),
			MatchStyle:     classify.MatchStatus(m.Status),
			Reasoning:      p.Reasoning,
		})
	}
	return panel
}

// MatchCard is one fixture on the live panel
type MatchCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Icon        string `json:"icon"`
	Status      string `json:"status"`
	StatusStyle string `json:"status_style"`
	Score       string `json:"score"`
	Corners     string `json:"corners"`
	Bookings    string `json:"bookings"`
	Started     string `json:"started"`
}

// LivePanel is the live matches tab
type LivePanel struct {
	Status
	Cards []MatchCard `json:"cards"`
}

// LiveMatches renders the polled live matches feed
func LiveMatches(snap view.Snapshot[models.Match], loc *time.Location) LivePanel {
	panel := LivePanel{
		Status: statusOf(snap, EmptyLiveMatches, loc),
		Cards:  make([]MatchCard, 0, len(snap.Items)),
	}
	if panel.Empty {
		return panel
	}

	for _, m := range snap.Items {
		panel.Cards = append(panel.Cards, MatchCard{
			ID:          m.ID,
			Title:       m.HomeTeam + " vs " + m.AwayTeam,
			Subtitle:    m.League + " • " + SportLabel(m.Sport),
			Icon:        classify.SportIcon(m.Sport),
			Status:      strings.ToUpper(string(m.Status)),
			StatusStyle: classify.MatchStatus(m.Status),
			Score:       Score(m.HomeScore, m.AwayScore),
			Corners:     Score(m.HomeCorners, m.AwayCorners),
			Bookings:    Score(m.HomeBookings, m.AwayBookings),
			Started:     formatTime(m.MatchDate, loc, DateTimeLayout),
		})
	}
	return panel
}

// Summary is the rounded form of models.SummaryStats
type Summary struct {
	Total       int    `json:"total"`
	Correct     int    `json:"correct"`
	WinRate     string `json:"win_rate"`
	Profit      string `json:"profit"`
	ProfitStyle string `json:"profit_style"`
}

func summaryOf(stats models.SummaryStats) Summary {
	return Summary{
		Total:       stats.TotalPredictions,
		Correct:     stats.CorrectPredictions,
		WinRate:     WinRate(stats.WinRate),
		Profit:      Money(stats.TotalProfit),
		ProfitStyle: classify.Profit(stats.TotalProfit),
	}
}

// ResultCard is one settled prediction on the history panel
type ResultCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Result      string `json:"result"`
	ResultStyle string `json:"result_style"`
	Odds        string `json:"odds"`
	Predicted   string `json:"predicted"`
	Actual      string `json:"actual"`
	Profit      string `json:"profit"`
	ProfitStyle string `json:"profit_style"`
	Completed   string `json:"completed"`
}

// HistoryPanel is the history tab with its summary tiles
type HistoryPanel struct {
	Status
	Summary Summary                           `json:"summary"`
	ByType  map[models.PredictionType]Summary `json:"by_type,omitempty"`
	Streaks models.StreakStats                `json:"streaks"`
	Cards   []ResultCard                      `json:"cards"`
}

// History renders the result history. Summary figures are recomputed from
// whatever collection the snapshot holds.
func History(snap view.Snapshot[models.PredictionResult], loc *time.Location) HistoryPanel {
	panel := HistoryPanel{
		Status:  statusOf(snap, EmptyHistory, loc),
		Summary: summaryOf(aggregate.Summarize(snap.Items)),
		Streaks: aggregate.Streaks(snap.Items),
		Cards:   make([]ResultCard, 0, len(snap.Items)),
	}

	byType := aggregate.ByPredictionType(snap.Items)
	if len(byType) > 0 {
		panel.ByType = make(map[models.PredictionType]Summary, len(byType))
		for t, stats := range byType {
			panel.ByType[t] = summaryOf(stats)
		}
	}

	if panel.Empty {
		return panel
	}

	for _, r := range snap.Items {
		m := r.Prediction.Match
		style, label := classify.Result(r.IsCorrect)
		panel.Cards = append(panel.Cards, ResultCard{
			ID:          r.ID,
			Title:       m.HomeTeam + " vs " + m.AwayTeam,
			Subtitle:    SportLabel(m.Sport) + " • Final: " + Score(m.HomeScore, m.AwayScore),
			Result:      label,
			ResultStyle: style,
			Odds:        Odds(r.Prediction.Odds),
			Predicted:   r.Prediction.PredictedOutcome,
			Actual:      r.ActualOutcome,
			Profit:      Money(r.ProfitLoss),
			ProfitStyle: classify.Profit(r.ProfitLoss),
			Completed:   formatTime(r.CreatedAt, loc, DateTimeLayout),
		})
	}
	return panel
}

// PlanOption is an upsell button
type PlanOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ProfilePanel is the subscription panel. Active subscribers see renewal
// info; everyone else, including a failed profile load, sees the upsell.
type ProfilePanel struct {
	Status
	Badge       string       `json:"badge,omitempty"`
	BadgeStyle  string       `json:"badge_style,omitempty"`
	Active      bool         `json:"active"`
	AccessUntil string       `json:"access_until,omitempty"`
	DaysLeft    *int         `json:"days_left,omitempty"`
	Plans       []PlanOption `json:"plans,omitempty"`
}

// Profile renders the subscription panel
func Profile(snap view.Snapshot[models.Profile], now time.Time, loc *time.Location) ProfilePanel {
	panel := ProfilePanel{Status: statusOf(snap, "", loc)}
	if panel.Loading {
		return panel
	}

	var profile *models.Profile
	if len(snap.Items) > 0 {
		profile = &snap.Items[0]
		panel.Badge = strings.ToUpper(profile.SubscriptionStatus)
		panel.BadgeStyle = classify.SubscriptionStatus(profile.SubscriptionStatus)
	}

	if profile != nil && profile.IsActive() {
		panel.Active = true
		if profile.SubscriptionExpiresAt == nil {
			panel.AccessUntil = "Unlimited"
		} else {
			panel.AccessUntil = formatTime(*profile.SubscriptionExpiresAt, loc, DateLayout)
			days := models.DaysLeft(*profile.SubscriptionExpiresAt, now)
			panel.DaysLeft = &days
		}
		return panel
	}

	for _, plan := range models.Plans {
		panel.Plans = append(panel.Plans, PlanOption{ID: plan.ID, Label: plan.Label()})
	}
	return panel
}

// Dashboard is the full page for one session. LiveRefreshSeconds mirrors the
// poll interval so the HTML page can reload itself.
type Dashboard struct {
	User               models.User           `json:"user"`
	Predictions        PredictionsPanel      `json:"predictions"`
	Live               LivePanel             `json:"live"`
	History            HistoryPanel          `json:"history"`
	Profile            ProfilePanel          `json:"profile"`
	Notifications      []models.Notification `json:"notifications"`
	LiveRefreshSeconds int                   `json:"live_refresh_seconds"`
	RenderedAt         string                `json:"rendered_at"`
}
