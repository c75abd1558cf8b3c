package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/Leratobriget/LivePrediction-Matches/models"
)

// Display layouts
const (
	DateTimeLayout = "2006-01-02 15:04"
	DateLayout     = "2006-01-02"
)

// WinRate rounds a percentage to one decimal place
func WinRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// Money rounds a signed amount to cents
func Money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// Odds formats decimal odds
func Odds(odds float64) string {
	return fmt.Sprintf("%.2f", odds)
}

// Score joins a home and away figure
func Score(home, away int) string {
	return fmt.Sprintf("%d - %d", home, away)
}

// SportLabel upper-cases the sport for card subtitles. Empty sports fall back to OTHER.
func SportLabel(sport models.Sport) string {
	if sport == "" {
		return strings.ToUpper(string(models.SportOther))
	}
	return strings.ToUpper(string(sport))
}

func formatTime(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(layout)
}
