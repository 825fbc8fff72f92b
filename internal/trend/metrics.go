// Package trend computes per-session confidence aggregates and longitudinal
// trends across a chronological sequence of sessions.
package trend

import (
	"math"
	"sort"

	"github.com/avolkov/guidecheck/internal/model"
	"github.com/avolkov/guidecheck/internal/quality"
)

// ComputeMetrics aggregates the extraction confidences of one session's
// questions into a ConfidenceMetrics snapshot. Empty input yields zeroed
// aggregates, never an error. Inputs are not mutated.
func ComputeMetrics(questions []model.TrainingQuestion, classifier *quality.Classifier) model.ConfidenceMetrics {
	m := model.ConfidenceMetrics{
		TotalQuestions: len(questions),
		LevelCounts:    make(map[model.ConfidenceLevel]int),
	}
	for _, level := range model.Levels() {
		m.LevelCounts[level] = 0
	}
	if len(questions) == 0 {
		return m
	}

	values := make([]float64, 0, len(questions))
	for _, q := range questions {
		c := q.Confidence()
		values = append(values, c)
		m.LevelCounts[classifier.Classify(c)]++
		m.Histogram[histogramBucket(c)]++
	}

	m.Average = mean(values)
	m.Median = median(values)
	m.StdDev = stdDev(values)
	return m
}

// histogramBucket maps a confidence in [0,1] to one of ten buckets;
// 1.0 lands in the top bucket.
func histogramBucket(c float64) int {
	b := int(c * 10)
	if b < 0 {
		b = 0
	}
	if b > 9 {
		b = 9
	}
	return b
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// stdDev is the sample standard deviation; fewer than two values yield 0.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
