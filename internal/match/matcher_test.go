package match

import (
	"errors"
	"testing"

	"github.com/avolkov/guidecheck/internal/model"
)

func guideQuestions() []model.Question {
	return []model.Question{
		{Number: "1", Text: "What is the capital of France?", ModelAnswer: "Paris", Marks: 10},
		{Number: "2", Text: "Explain Newton's second law of motion.", ModelAnswer: "F = ma", Marks: 15},
	}
}

func TestMatchExactNumbers(t *testing.T) {
	m := NewMatcher(0.8)
	answers := []model.StudentAnswer{{Number: "1", Text: "ans1"}}

	res, err := m.Match(guideQuestions(), answers)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}

	first := res.Matches[0]
	if first.QuestionNumber != "1" || first.StudentAnswer != "ans1" || first.MatchConfidence != 1.0 {
		t.Errorf("unexpected first match: %+v", first)
	}
	second := res.Matches[1]
	if second.QuestionNumber != "2" || second.StudentAnswer != "" || second.MatchConfidence != 0.0 {
		t.Errorf("unexpected second match: %+v", second)
	}
	if len(res.UnmatchedAnswers) != 0 {
		t.Errorf("expected no unmatched answers, got %v", res.UnmatchedAnswers)
	}
}

func TestMatchFuzzyText(t *testing.T) {
	m := NewMatcher(0.8)
	questions := []model.Question{
		{Number: "1", Text: "What is the capital of France?", Marks: 5},
		{Number: "2", Text: "Name the largest planet in the solar system.", Marks: 5},
	}
	// Numbering is missing, but the answer restates the question text.
	answers := []model.StudentAnswer{
		{Number: "", Text: "Name the largest planet in the solar system"},
	}

	res, err := m.Match(questions, answers)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got := res.Matches[1].StudentAnswer; got != answers[0].Text {
		t.Errorf("fuzzy match attached to wrong question, answer on q2 = %q", got)
	}
	if c := res.Matches[1].MatchConfidence; c < 0.8 || c > 1.0 {
		t.Errorf("fuzzy confidence = %v, want within [0.8, 1.0]", c)
	}
	if res.Matches[0].MatchConfidence != 0 {
		t.Errorf("question 1 should be unmatched, got confidence %v", res.Matches[0].MatchConfidence)
	}
}

func TestMatchThresholdOneIsExactTextOnly(t *testing.T) {
	m := NewMatcher(1.0)
	questions := []model.Question{
		{Number: "1", Text: "define velocity"},
		{Number: "2", Text: "define acceleration"},
	}
	answers := []model.StudentAnswer{
		{Number: "9", Text: "Define velocity!"},     // normalizes to exact question text
		{Number: "8", Text: "define accelerationn"}, // close but not exact
	}

	res, err := m.Match(questions, answers)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Matches[0].MatchConfidence != 1.0 || res.Matches[0].StudentAnswer != "Define velocity!" {
		t.Errorf("expected exact-text fuzzy match on q1, got %+v", res.Matches[0])
	}
	if res.Matches[1].MatchConfidence != 0 {
		t.Errorf("near-miss should not match at threshold 1.0, got %+v", res.Matches[1])
	}
	if len(res.UnmatchedAnswers) != 1 || res.UnmatchedAnswers[0].Number != "8" {
		t.Errorf("expected answer 8 in unmatched list, got %v", res.UnmatchedAnswers)
	}
}

func TestMatchOutputLengthAlwaysEqualsQuestionCount(t *testing.T) {
	m := NewMatcher(0.8)
	tests := []struct {
		name      string
		questions []model.Question
		answers   []model.StudentAnswer
	}{
		{"no answers", guideQuestions(), nil},
		{"more answers than questions", guideQuestions(), []model.StudentAnswer{
			{Number: "1", Text: "a"}, {Number: "2", Text: "b"}, {Number: "3", Text: "c"}, {Number: "4", Text: "d"},
		}},
		{"empty questions", nil, []model.StudentAnswer{{Number: "1", Text: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.Match(tt.questions, tt.answers)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if len(res.Matches) != len(tt.questions) {
				t.Errorf("got %d matches for %d questions", len(res.Matches), len(tt.questions))
			}
		})
	}
}

func TestMatchSortsByIntegerNumber(t *testing.T) {
	m := NewMatcher(0.8)
	questions := []model.Question{
		{Number: "10", Text: "ten"},
		{Number: "2", Text: "two"},
		{Number: "1", Text: "one"},
	}
	res, err := m.Match(questions, nil)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	want := []string{"1", "2", "10"}
	for i, w := range want {
		if res.Matches[i].QuestionNumber != w {
			t.Errorf("position %d = %q, want %q", i, res.Matches[i].QuestionNumber, w)
		}
	}
}

func TestMatchNonNumericNumberFails(t *testing.T) {
	m := NewMatcher(0.8)
	questions := []model.Question{{Number: "2a", Text: "some question"}}

	_, err := m.Match(questions, nil)
	if err == nil {
		t.Fatal("expected error for non-numeric question number")
	}
	var numErr *model.InvalidNumberError
	if !errors.As(err, &numErr) {
		t.Fatalf("expected *model.InvalidNumberError, got %T: %v", err, err)
	}
	if numErr.Number != "2a" {
		t.Errorf("error names number %q, want \"2a\"", numErr.Number)
	}
}

func TestMatchFuzzyTieIsStable(t *testing.T) {
	m := NewMatcher(0.5)
	// Identical question texts: the first-encountered question must win.
	questions := []model.Question{
		{Number: "1", Text: "duplicate question"},
		{Number: "2", Text: "duplicate question"},
	}
	answers := []model.StudentAnswer{{Number: "", Text: "duplicate question"}}

	res, err := m.Match(questions, answers)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Matches[0].StudentAnswer == "" {
		t.Error("tie should resolve to the first-encountered question")
	}
	if res.Matches[1].StudentAnswer != "" {
		t.Error("second duplicate should remain unmatched")
	}
}

func TestMatchExactPassConsumesQuestion(t *testing.T) {
	m := NewMatcher(0.8)
	// Two answers claim number 1; only one question carries it.
	questions := []model.Question{{Number: "1", Text: "only question"}}
	answers := []model.StudentAnswer{
		{Number: "1", Text: "first"},
		{Number: "1", Text: "second"},
	}

	res, err := m.Match(questions, answers)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if res.Matches[0].StudentAnswer != "first" {
		t.Errorf("expected first answer to win, got %q", res.Matches[0].StudentAnswer)
	}
}
