package aggregate

import (
	"sort"

	"github.com/Leratobriget/LivePrediction-Matches/models"
)

// Summarize reduces a result history into summary statistics.
// Values are kept at full precision; rounding is a display concern.
func Summarize(results []models.PredictionResult) models.SummaryStats {
	stats := models.SummaryStats{
		TotalPredictions: len(results),
	}

	for _, result := range results {
		if result.IsCorrect {
			stats.CorrectPredictions++
		}
		stats.TotalProfit += result.ProfitLoss
	}

	if stats.TotalPredictions > 0 {
		stats.WinRate = float64(stats.CorrectPredictions) / float64(stats.TotalPredictions) * 100
	}

	return stats
}

// ByPredictionType computes summary statistics per prediction type
func ByPredictionType(results []models.PredictionResult) map[models.PredictionType]models.SummaryStats {
	grouped := make(map[models.PredictionType][]models.PredictionResult)
	for _, result := range results {
		t := result.Prediction.PredictionType
		grouped[t] = append(grouped[t], result)
	}

	out := make(map[models.PredictionType]models.SummaryStats, len(grouped))
	for t, group := range grouped {
		out[t] = Summarize(group)
	}
	return out
}

// Streaks returns the longest run of consecutive wins and losses, with
// results ordered oldest first by CreatedAt.
func Streaks(results []models.PredictionResult) models.StreakStats {
	ordered := make([]models.PredictionResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	var streaks models.StreakStats
	wins, losses := 0, 0
	for _, result := range ordered {
		if result.IsCorrect {
			wins++
			losses = 0
		} else {
			losses++
			wins = 0
		}
		if wins > streaks.Wins {
			streaks.Wins = wins
		}
		if losses > streaks.Losses {
			streaks.Losses = losses
		}
	}

	return streaks
}
