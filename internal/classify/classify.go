package classify

import "github.com/Leratobriget/LivePrediction-Matches/models"

// Style classes shared by every panel
const (
	StylePositive = "positive"
	StyleWarning  = "warning"
	StyleNegative = "negative"
	StyleNeutral  = "neutral"
	StyleAlert    = "alert"
	StyleInfo     = "info"
)

// Confidence tiers
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// PredictionType maps safe tips to positive and everything else to warning
func PredictionType(t models.PredictionType) string {
	switch t {
	case models.PredictionTypeSafe:
		return StylePositive
	case models.PredictionTypeRisky:
		return StyleWarning
	default:
		return StyleWarning
	}
}

// ConfidenceTier buckets a 0-100 confidence score
func ConfidenceTier(score int) string {
	if score >= 80 {
		return TierHigh
	}
	if score >= 60 {
		return TierMedium
	}
	return TierLow
}

// MatchStatus maps a match status to its badge style
func MatchStatus(status models.MatchStatus) string {
	switch status {
	case models.MatchStatusLive:
		return StyleAlert
	case models.MatchStatusUpcoming:
		return StyleInfo
	case models.MatchStatusFinished:
		return StyleNeutral
	default:
		return StyleNeutral
	}
}

// Profit maps the sign of a profit/loss figure
func Profit(amount float64) string {
	switch {
	case amount > 0:
		return StylePositive
	case amount < 0:
		return StyleNegative
	default:
		return StyleNeutral
	}
}

// Result maps a settled prediction to its badge style and label
func Result(isCorrect bool) (style, label string) {
	if isCorrect {
		return StylePositive, "WIN"
	}
	return StyleNegative, "LOSS"
}

// SubscriptionStatus maps a profile status to its badge style
func SubscriptionStatus(status string) string {
	switch status {
	case models.SubscriptionStatusActive:
		return StylePositive
	case models.SubscriptionStatusInactive:
		return StyleNeutral
	case models.SubscriptionStatusCancelled:
		return StyleNegative
	default:
		return StyleNeutral
	}
}

// SportIcon returns the emoji shown next to a match; unknown sports get a trophy
func SportIcon(sport models.Sport) string {
	switch sport {
	case models.SportSoccer:
		return "⚽"
	case models.SportBasketball:
		return "🏀"
	case models.SportBaseball:
		return "⚾"
	case models.SportCricket:
		return "🏏"
	default:
		return "🏆"
	}
}
