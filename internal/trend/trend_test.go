package trend

import (
	"math"
	"testing"

	"github.com/avolkov/guidecheck/internal/model"
)

func historyWithAverages(averages ...float64) []model.ConfidenceMetrics {
	h := make([]model.ConfidenceMetrics, len(averages))
	for i, avg := range averages {
		h[i] = model.ConfidenceMetrics{TotalQuestions: 10, Average: avg}
	}
	return h
}

func hasRec(recs []RecommendationCode, want RecommendationCode) bool {
	for _, r := range recs {
		if r == want {
			return true
		}
	}
	return false
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	r := Analyze(nil)
	if r.Sessions != 0 || r.OverallAverage != 0 || r.ImprovementTrend != 0 {
		t.Errorf("empty history should zero the report, got %+v", r)
	}
	if len(r.Recommendations) != 0 {
		t.Errorf("empty history should produce no recommendations, got %v", r.Recommendations)
	}
}

func TestAnalyzeSinglePointHasNoTrend(t *testing.T) {
	r := Analyze(historyWithAverages(0.9))
	if r.ImprovementTrend != 0 {
		t.Errorf("trend with one point = %v, want 0", r.ImprovementTrend)
	}
}

func TestAnalyzeTwoPointsUseFullWindows(t *testing.T) {
	// With fewer than three points per side both windows cover everything,
	// so the comparison cancels out.
	r := Analyze(historyWithAverages(0.5, 0.8))
	if r.ImprovementTrend != 0 {
		t.Errorf("trend = %v, want 0", r.ImprovementTrend)
	}
	if hasRec(r.Recommendations, RecImproving) {
		t.Errorf("unexpected improving recommendation: %v", r.Recommendations)
	}
}

func TestAnalyzeImproving(t *testing.T) {
	r := Analyze(historyWithAverages(0.5, 0.55, 0.6, 0.7, 0.75, 0.8))

	want := 0.2 // mean(0.7,0.75,0.8) - mean(0.5,0.55,0.6)
	if math.Abs(r.ImprovementTrend-want) > 1e-9 {
		t.Errorf("trend = %v, want %v", r.ImprovementTrend, want)
	}
	if !hasRec(r.Recommendations, RecImproving) {
		t.Errorf("expected improving, got %v", r.Recommendations)
	}
	if len(r.Recommendations) != 1 {
		t.Errorf("expected only improving, got %v", r.Recommendations)
	}
}

func TestAnalyzeDeclining(t *testing.T) {
	r := Analyze(historyWithAverages(0.8, 0.75, 0.7, 0.6, 0.55, 0.5))

	if r.ImprovementTrend >= -0.1 {
		t.Errorf("trend = %v, want below -0.1", r.ImprovementTrend)
	}
	if !hasRec(r.Recommendations, RecDeclining) {
		t.Errorf("expected declining, got %v", r.Recommendations)
	}
}

func TestAnalyzeQualityConcern(t *testing.T) {
	r := Analyze(historyWithAverages(0.4, 0.45, 0.4))

	if !hasRec(r.Recommendations, RecQualityConcern) {
		t.Errorf("expected quality_concern, got %v", r.Recommendations)
	}
	if hasRec(r.Recommendations, RecDeclining) || hasRec(r.Recommendations, RecImproving) {
		t.Errorf("flat sequence should not trend, got %v", r.Recommendations)
	}
}

func TestAnalyzeHighVariance(t *testing.T) {
	r := Analyze(historyWithAverages(0.3, 0.9, 0.35, 0.95, 0.5))

	if !hasRec(r.Recommendations, RecHighVariance) {
		t.Errorf("expected high_variance, got %v", r.Recommendations)
	}
	if hasRec(r.Recommendations, RecQualityConcern) {
		t.Errorf("mean 0.6 should not raise quality_concern: %v", r.Recommendations)
	}
}

func TestAnalyzeDoesNotMutateHistory(t *testing.T) {
	history := historyWithAverages(0.9, 0.2, 0.7)
	copied := historyWithAverages(0.9, 0.2, 0.7)

	Analyze(history)
	for i := range history {
		if history[i].Average != copied[i].Average {
			t.Fatalf("history mutated at %d: %v", i, history[i])
		}
	}
}
