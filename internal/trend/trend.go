package trend

import "github.com/avolkov/guidecheck/internal/model"

// RecommendationCode identifies one trend recommendation. Human-facing
// wording is resolved from these codes in the API layer.
type RecommendationCode string

const (
	RecQualityConcern RecommendationCode = "quality_concern"
	RecDeclining      RecommendationCode = "declining"
	RecImproving      RecommendationCode = "improving"
	RecHighVariance   RecommendationCode = "high_variance"
)

// Report summarizes confidence movement across a chronological sequence of
// session snapshots.
type Report struct {
	Sessions         int                  `json:"sessions"`
	OverallAverage   float64              `json:"overall_average"`
	ImprovementTrend float64              `json:"improvement_trend"`
	Recommendations  []RecommendationCode `json:"recommendations"`
}

// trendWindow is how many sessions each end of the improvement comparison
// uses; varianceWindow is how many recent sessions feed the variance check.
const (
	trendWindow    = 3
	varianceWindow = 5
)

// Analyze computes the improvement trend and recommendations for a
// chronological metrics sequence. Inputs are not mutated.
//
// The improvement trend is mean(last 3 averages) - mean(first 3 averages),
// shrinking the windows when fewer than three points exist on a side, and 0.0
// with fewer than two points overall.
func Analyze(history []model.ConfidenceMetrics) Report {
	averages := make([]float64, len(history))
	for i, m := range history {
		averages[i] = m.Average
	}

	r := Report{
		Sessions:       len(history),
		OverallAverage: mean(averages),
	}
	if n := len(averages); n >= 2 {
		head := averages[:min(trendWindow, n)]
		tail := averages[max(0, n-trendWindow):]
		r.ImprovementTrend = mean(tail) - mean(head)
	}

	if len(history) > 0 && r.OverallAverage < 0.5 {
		r.Recommendations = append(r.Recommendations, RecQualityConcern)
	}
	if r.ImprovementTrend < -0.1 {
		r.Recommendations = append(r.Recommendations, RecDeclining)
	}
	if r.ImprovementTrend > 0.1 {
		r.Recommendations = append(r.Recommendations, RecImproving)
	}
	if n := len(averages); n >= 2 {
		recent := averages[max(0, n-varianceWindow):]
		if stdDev(recent) > 0.2 {
			r.Recommendations = append(r.Recommendations, RecHighVariance)
		}
	}

	return r
}
