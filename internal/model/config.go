package model

// LevelThresholds are the lower bounds for confidence-level classification.
// A confidence c maps to the first level whose bound it reaches:
// c >= High -> high, c >= Medium -> medium, c >= Low -> low, else critical.
type LevelThresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// ScoreWeights are the weights of the quality-score components. They are
// expected to sum to 1.0.
type ScoreWeights struct {
	Confidence   float64
	Consistency  float64
	Clarity      float64
	Completeness float64
}

// AnalysisConfig holds all tunable analysis parameters. Constructed once and
// injected; nothing in the analysis core reads globals.
type AnalysisConfig struct {
	SimilarityThreshold float64
	Levels              LevelThresholds
	Weights             ScoreWeights
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() AnalysisConfig {
	return AnalysisConfig{
		SimilarityThreshold: 0.8,
		Levels: LevelThresholds{
			High:   0.8,
			Medium: 0.6,
			Low:    0.4,
		},
		Weights: ScoreWeights{
			Confidence:   0.4,
			Consistency:  0.3,
			Clarity:      0.2,
			Completeness: 0.1,
		},
	}
}
