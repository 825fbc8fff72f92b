package quality

import (
	"strings"
	"unicode"

	"github.com/avolkov/guidecheck/internal/model"
)

// DetectFlags derives quality flags from the sub-scores and the raw question
// text. Checks are independent; flags may co-occur. The returned slice is a
// deduplicated set in stable order.
func DetectFlags(q model.TrainingQuestion, sub model.SubScores) []model.QualityFlag {
	var flags []model.QualityFlag
	if sub.Confidence < 0.4 {
		flags = append(flags, model.FlagLowConfidence)
	}
	if sub.Consistency < 0.5 {
		flags = append(flags, model.FlagInconsistentAnswer)
	}
	if sub.Clarity < 0.5 {
		flags = append(flags, model.FlagUnclearQuestion)
	}
	if sub.Completeness < 0.5 {
		flags = append(flags, model.FlagPotentialError)
	}
	if hasFormattingIssue(q.QuestionText) {
		flags = append(flags, model.FlagFormattingIssue)
	}
	return flags
}

// hasFormattingIssue reports leading/trailing whitespace, double spaces,
// tab characters, or non-ASCII runes within the first 100 characters.
func hasFormattingIssue(text string) bool {
	if text == "" {
		return false
	}
	if text != strings.TrimSpace(text) {
		return true
	}
	if strings.Contains(text, "  ") || strings.Contains(text, "\t") {
		return true
	}
	n := 0
	for _, r := range text {
		if n >= 100 {
			break
		}
		if r > unicode.MaxASCII {
			return true
		}
		n++
	}
	return false
}
