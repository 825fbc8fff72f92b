package quality

import (
	"testing"

	"github.com/avolkov/guidecheck/internal/model"
)

func hasFlag(flags []model.QualityFlag, f model.QualityFlag) bool {
	for _, got := range flags {
		if got == f {
			return true
		}
	}
	return false
}

func TestDetectFlagsFromSubScores(t *testing.T) {
	goodSub := model.SubScores{Confidence: 0.9, Consistency: 0.8, Clarity: 0.9, Completeness: 1.0}

	tests := []struct {
		name string
		sub  model.SubScores
		want model.QualityFlag
	}{
		{"low confidence", model.SubScores{Confidence: 0.3, Consistency: 0.8, Clarity: 0.9, Completeness: 1}, model.FlagLowConfidence},
		{"inconsistent answer", model.SubScores{Confidence: 0.9, Consistency: 0.4, Clarity: 0.9, Completeness: 1}, model.FlagInconsistentAnswer},
		{"unclear question", model.SubScores{Confidence: 0.9, Consistency: 0.8, Clarity: 0.4, Completeness: 1}, model.FlagUnclearQuestion},
		{"potential error", model.SubScores{Confidence: 0.9, Consistency: 0.8, Clarity: 0.9, Completeness: 0.4}, model.FlagPotentialError},
	}

	q := model.TrainingQuestion{QuestionText: "What is inertia?"}

	if flags := DetectFlags(q, goodSub); len(flags) != 0 {
		t.Errorf("clean question produced flags: %v", flags)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := DetectFlags(q, tt.sub)
			if !hasFlag(flags, tt.want) {
				t.Errorf("expected %v in %v", tt.want, flags)
			}
			if len(flags) != 1 {
				t.Errorf("expected exactly one flag, got %v", flags)
			}
		})
	}
}

func TestDetectFlagsCoOccur(t *testing.T) {
	q := model.TrainingQuestion{QuestionText: "bad\ttext"}
	sub := model.SubScores{Confidence: 0.1, Consistency: 0.1, Clarity: 0.1, Completeness: 0.1}

	flags := DetectFlags(q, sub)
	if len(flags) != 5 {
		t.Fatalf("expected all 5 flags, got %v", flags)
	}
	seen := make(map[model.QualityFlag]bool)
	for _, f := range flags {
		if seen[f] {
			t.Errorf("duplicate flag %v", f)
		}
		seen[f] = true
	}
}

func TestFormattingIssueDetection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"clean", "What is the boiling point of water?", false},
		{"empty text is not a formatting issue", "", false},
		{"leading whitespace", " What is heat?", true},
		{"trailing whitespace", "What is heat? ", true},
		{"double space", "What is  heat?", true},
		{"tab", "What\tis heat?", true},
		{"non-ascii early", "Whät is heat?", true},
		{"non-ascii past first 100 chars", asciiPrefix(120) + "é", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasFormattingIssue(tt.text); got != tt.want {
				t.Errorf("hasFormattingIssue(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func asciiPrefix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
