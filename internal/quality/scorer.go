package quality

import (
	"strings"

	"github.com/avolkov/guidecheck/internal/match"
	"github.com/avolkov/guidecheck/internal/model"
)

// neutralScore stands in for a sub-score that cannot be computed from the
// inputs. Unknown quality degrades to neutral rather than failing the whole
// assessment.
const neutralScore = 0.5

var questionWords = []string{"what", "how", "why", "when", "where", "which"}

// Scorer computes a weighted composite quality score from four sub-scores.
type Scorer struct {
	weights model.ScoreWeights
}

// NewScorer creates a scorer with the given component weights. Weights are
// expected to sum to 1.0; the composite is clamped to [0,1] regardless.
func NewScorer(weights model.ScoreWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score returns the composite quality score and its components.
func (s *Scorer) Score(q model.TrainingQuestion) (float64, model.SubScores) {
	sub := model.SubScores{
		Confidence:   confidenceScore(q),
		Consistency:  consistencyScore(q.QuestionText, q.ExpectedAnswer),
		Clarity:      clarityScore(q.QuestionText),
		Completeness: completenessScore(q),
	}
	composite := s.weights.Confidence*sub.Confidence +
		s.weights.Consistency*sub.Consistency +
		s.weights.Clarity*sub.Clarity +
		s.weights.Completeness*sub.Completeness
	return clamp01(composite), sub
}

// confidenceScore is the extraction confidence, 0 when the extractor
// reported none.
func confidenceScore(q model.TrainingQuestion) float64 {
	if q.ExtractionConfidence == nil {
		return 0
	}
	return clamp01(*q.ExtractionConfidence)
}

// consistencyScore measures word overlap between question and expected
// answer: |intersection| / |union|, scaled by 2 and capped at 1. Missing
// text on either side yields the neutral score.
func consistencyScore(question, answer string) float64 {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return neutralScore
	}
	qWords := wordSet(question)
	aWords := wordSet(answer)
	if len(qWords) == 0 || len(aWords) == 0 {
		return neutralScore
	}

	union := make(map[string]struct{}, len(qWords)+len(aWords))
	common := 0
	for w := range qWords {
		union[w] = struct{}{}
	}
	for w := range aWords {
		if _, ok := qWords[w]; ok {
			common++
		}
		union[w] = struct{}{}
	}

	overlap := float64(common) / float64(len(union))
	return min(1.0, overlap*2)
}

// clarityScore starts at 1.0 and penalizes very short text, very long text,
// and text that neither asks with "?" nor uses an interrogative word.
func clarityScore(text string) float64 {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	score := 1.0
	length := len([]rune(trimmed))
	if length < 10 {
		score -= 0.3
	}
	if length > 500 {
		score -= 0.2
	}
	lower := strings.ToLower(trimmed)
	if !strings.Contains(lower, "?") && !containsAny(lower, questionWords) {
		score -= 0.3
	}
	if score < 0 {
		score = 0
	}
	return score
}

// completenessScore starts at 1.0 and penalizes missing question text,
// missing expected answer, non-positive point value, and a missing number.
func completenessScore(q model.TrainingQuestion) float64 {
	score := 1.0
	if strings.TrimSpace(q.QuestionText) == "" {
		score -= 0.4
	}
	if strings.TrimSpace(q.ExpectedAnswer) == "" {
		score -= 0.3
	}
	if q.PointValue <= 0 {
		score -= 0.2
	}
	if strings.TrimSpace(q.QuestionNumber) == "" {
		score -= 0.1
	}
	if score < 0 {
		score = 0
	}
	return score
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(match.Normalize(text)) {
		set[w] = struct{}{}
	}
	return set
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
