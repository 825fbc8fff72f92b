package quality

import "github.com/avolkov/guidecheck/internal/model"

// basePriority is the starting review priority per confidence level.
// MEDIUM sits at 2 rather than 3: a medium-confidence question with no
// other defects rarely deserves the middle of the queue.
var basePriority = map[model.ConfidenceLevel]int{
	model.LevelCritical: 5,
	model.LevelLow:      4,
	model.LevelMedium:   2,
	model.LevelHigh:     1,
}

// Prioritize computes the review priority (1 lowest, 5 highest) from the
// confidence level, the number of detected flags, and the quality score.
func Prioritize(level model.ConfidenceLevel, flagCount int, qualityScore float64) int {
	p := basePriority[level]
	p += min(2, flagCount)
	if qualityScore < 0.3 {
		p++
	}
	if p < 1 {
		p = 1
	}
	if p > 5 {
		p = 5
	}
	return p
}

// NeedsReview decides whether a question must be queued for human review.
func NeedsReview(level model.ConfidenceLevel, flagCount int, qualityScore float64) bool {
	return level == model.LevelLow || level == model.LevelCritical ||
		flagCount > 2 || qualityScore < 0.6
}
