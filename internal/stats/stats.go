package stats

import (
	"math"

	"surveysynth/internal/api"
)

// DashboardStats is the derived summary for one user's survey portfolio.
// It is recomputed from the current snapshot on every fetch and never stored.
type DashboardStats struct {
	TotalSurveys        int     `json:"total_surveys"`
	TotalResponses      int     `json:"total_responses"`
	CompletedAnalyses   int     `json:"completed_analyses"`
	AverageSatisfaction float64 `json:"average_satisfaction"`
}

// ComputeStats combines a survey list and an insight list into dashboard
// summary statistics. An empty insight set yields a 0 average, never NaN.
func ComputeStats(surveys []api.Survey, insights []api.Insight) DashboardStats {
	stats := DashboardStats{
		TotalSurveys: len(surveys),
	}

	var totalSatisfaction float64
	for _, insight := range insights {
		stats.TotalResponses += insight.ResponseCount

		// A nil score means the analysis has not produced one; it counts as
		// 0 in the aggregate and never as a completed analysis.
		score := Satisfaction(insight)
		totalSatisfaction += score
		if score > 0 {
			stats.CompletedAnalyses++
		}
	}

	if len(insights) > 0 {
		stats.AverageSatisfaction = round1(totalSatisfaction / float64(len(insights)))
	}

	return stats
}

// Satisfaction returns the insight's satisfaction score, treating a missing
// score as 0 for aggregate math. Presentation should read AvgSatisfaction
// directly when it needs to distinguish "no data" from a genuine zero.
func Satisfaction(insight api.Insight) float64 {
	if insight.AvgSatisfaction == nil {
		return 0
	}
	return *insight.AvgSatisfaction
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
