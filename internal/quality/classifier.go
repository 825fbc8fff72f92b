// Package quality assesses automatically extracted question/answer pairs:
// confidence classification, weighted quality scoring, defect flagging, and
// review prioritization. All parameters are injected; assessment is pure and
// idempotent.
package quality

import "github.com/avolkov/guidecheck/internal/model"

// Classifier maps a confidence value to an ordinal level using configurable
// thresholds.
type Classifier struct {
	levels model.LevelThresholds
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(levels model.LevelThresholds) *Classifier {
	return &Classifier{levels: levels}
}

// Classify returns the confidence level for c.
func (cl *Classifier) Classify(c float64) model.ConfidenceLevel {
	switch {
	case c >= cl.levels.High:
		return model.LevelHigh
	case c >= cl.levels.Medium:
		return model.LevelMedium
	case c >= cl.levels.Low:
		return model.LevelLow
	default:
		return model.LevelCritical
	}
}
