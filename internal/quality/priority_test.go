package quality

import (
	"testing"

	"github.com/avolkov/guidecheck/internal/model"
)

func TestPrioritize(t *testing.T) {
	tests := []struct {
		name  string
		level model.ConfidenceLevel
		flags int
		score float64
		want  int
	}{
		{"high clean", model.LevelHigh, 0, 0.9, 1},
		{"medium clean", model.LevelMedium, 0, 0.7, 2},
		{"low clean", model.LevelLow, 0, 0.65, 4},
		{"critical clean", model.LevelCritical, 0, 0.65, 5},
		{"flags add up to two", model.LevelHigh, 2, 0.9, 3},
		{"flag bonus caps at two", model.LevelHigh, 5, 0.9, 3},
		{"very low score adds one", model.LevelHigh, 0, 0.2, 2},
		{"clamps at five", model.LevelCritical, 4, 0.1, 5},
		{"medium with everything", model.LevelMedium, 3, 0.1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prioritize(tt.level, tt.flags, tt.score)
			if got != tt.want {
				t.Errorf("Prioritize(%s, %d, %.2f) = %d, want %d", tt.level, tt.flags, tt.score, got, tt.want)
			}
			if got < 1 || got > 5 {
				t.Errorf("priority %d outside [1,5]", got)
			}
		})
	}
}

func TestNeedsReview(t *testing.T) {
	tests := []struct {
		name  string
		level model.ConfidenceLevel
		flags int
		score float64
		want  bool
	}{
		{"high clean", model.LevelHigh, 0, 0.9, false},
		{"low level forces review", model.LevelLow, 0, 0.9, true},
		{"critical level forces review", model.LevelCritical, 0, 0.9, true},
		{"many flags force review", model.LevelHigh, 3, 0.9, true},
		{"two flags alone do not", model.LevelHigh, 2, 0.9, false},
		{"weak score forces review", model.LevelHigh, 0, 0.55, true},
		{"medium clean passes", model.LevelMedium, 0, 0.7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsReview(tt.level, tt.flags, tt.score); got != tt.want {
				t.Errorf("NeedsReview(%s, %d, %.2f) = %v, want %v", tt.level, tt.flags, tt.score, got, tt.want)
			}
		})
	}
}
