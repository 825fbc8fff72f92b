package quality

import (
	"fmt"
	"strings"

	"github.com/avolkov/guidecheck/internal/model"
)

// Assessor combines the classifier, scorer, flag detection, and
// prioritization into one assessment pipeline. Construct one per tuning;
// instances are immutable and safe for concurrent use.
type Assessor struct {
	classifier *Classifier
	scorer     *Scorer
}

// NewAssessor creates an assessor from the injected configuration.
func NewAssessor(cfg model.AnalysisConfig) *Assessor {
	return &Assessor{
		classifier: NewClassifier(cfg.Levels),
		scorer:     NewScorer(cfg.Weights),
	}
}

// Assess produces the full quality assessment for one extracted question.
// Repeated calls on an unchanged question yield identical results.
func (a *Assessor) Assess(q model.TrainingQuestion) model.QualityAssessment {
	score, sub := a.scorer.Score(q)
	level := a.classifier.Classify(q.Confidence())
	flags := DetectFlags(q, sub)

	return model.QualityAssessment{
		QuestionID:      q.ID,
		ConfidenceLevel: level,
		QualityScore:    score,
		SubScores:       sub,
		Flags:           flags,
		ReviewRequired:  NeedsReview(level, len(flags), score),
		Priority:        Prioritize(level, len(flags), score),
		Notes:           assessmentNotes(level, flags, score),
	}
}

// assessmentNotes renders a short machine-stable summary line. Localized,
// human-facing wording lives in the API layer.
func assessmentNotes(level model.ConfidenceLevel, flags []model.QualityFlag, score float64) string {
	if len(flags) == 0 {
		return fmt.Sprintf("%s confidence, quality %.2f", level, score)
	}
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = string(f)
	}
	return fmt.Sprintf("%s confidence, quality %.2f, flags: %s", level, score, strings.Join(names, ", "))
}
