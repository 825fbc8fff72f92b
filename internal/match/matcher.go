package match

import (
	"sort"
	"strconv"

	"github.com/avolkov/guidecheck/internal/model"
)

// DefaultSimilarityThreshold is the minimum fuzzy-pass similarity for a
// match to be accepted.
const DefaultSimilarityThreshold = 0.8

// Matcher pairs student answers with guide questions.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the given fuzzy similarity threshold.
// A threshold outside (0,1] falls back to the default.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	return &Matcher{threshold: threshold}
}

// Result is the outcome of one matching call. Matches always has exactly one
// entry per input question. UnmatchedAnswers lists student answers that
// attached to no question; surfacing them is deliberate, a silently dropped
// answer is a correctness risk in grading.
type Result struct {
	Matches          []model.MatchedAnswer `json:"matches"`
	UnmatchedAnswers []model.StudentAnswer `json:"unmatched_answers,omitempty"`
}

// Match runs the two-pass matching algorithm.
//
// Pass one matches answers to questions by exact number equality with
// confidence 1.0. Pass two normalizes the remaining answer texts and takes,
// for each, the highest-similarity remaining question, accepting it when the
// score reaches the threshold; ties keep the first-encountered question.
// Questions left over after both passes are emitted with an empty student
// answer and zero confidence.
//
// Output is sorted by integer question number; a non-numeric number returns
// a *model.InvalidNumberError.
func (m *Matcher) Match(questions []model.Question, answers []model.StudentAnswer) (*Result, error) {
	type entry struct {
		q          model.Question
		num        int
		answer     string
		confidence float64
		taken      bool
	}

	pool := make([]*entry, 0, len(questions))
	for _, q := range questions {
		n, err := strconv.Atoi(q.Number)
		if err != nil {
			return nil, &model.InvalidNumberError{Number: q.Number, Text: q.Text}
		}
		pool = append(pool, &entry{q: q, num: n})
	}

	var unmatched []model.StudentAnswer

	// Exact pass: answer number equals question number.
	remaining := make([]*model.StudentAnswer, len(answers))
	for i := range answers {
		remaining[i] = &answers[i]
	}
	for i, a := range remaining {
		for _, e := range pool {
			if e.taken || e.q.Number != a.Number {
				continue
			}
			e.answer = a.Text
			e.confidence = 1.0
			e.taken = true
			remaining[i] = nil
			break
		}
	}

	// Fuzzy pass: best normalized-text similarity against the remaining pool.
	for _, a := range remaining {
		if a == nil {
			continue
		}
		norm := Normalize(a.Text)
		var best *entry
		bestScore := 0.0
		for _, e := range pool {
			if e.taken {
				continue
			}
			score := Similarity(norm, Normalize(e.q.Text))
			if best == nil || score > bestScore {
				best, bestScore = e, score
			}
		}
		if best != nil && bestScore >= m.threshold {
			best.answer = a.Text
			best.confidence = clamp01(bestScore)
			best.taken = true
			continue
		}
		unmatched = append(unmatched, *a)
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].num < pool[j].num })

	matches := make([]model.MatchedAnswer, 0, len(pool))
	for _, e := range pool {
		matches = append(matches, model.MatchedAnswer{
			QuestionNumber:  e.q.Number,
			QuestionText:    e.q.Text,
			ModelAnswer:     e.q.ModelAnswer,
			StudentAnswer:   e.answer,
			MaxMarks:        e.q.Marks,
			MatchConfidence: e.confidence,
		})
	}

	return &Result{Matches: matches, UnmatchedAnswers: unmatched}, nil
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
