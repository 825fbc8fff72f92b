package match

import (
	"math"
	"testing"
)

func TestSimilarityIdentity(t *testing.T) {
	for _, s := range []string{"a", "hello world", "что такое сила", "12345"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	// Two empty strings are trivially identical.
	if got := Similarity("", ""); got != 1.0 {
		t.Errorf("Similarity(\"\", \"\") = %v, want 1.0", got)
	}
	if got := Similarity("abc", ""); got != 0.0 {
		t.Errorf("Similarity(\"abc\", \"\") = %v, want 0.0", got)
	}
}

func TestSimilarityKnownRatios(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abcd", "bcde", 0.75},       // block "bcd": 2*3/8
		{"abc", "xyz", 0.0},          // no common runes
		{"aaab", "ab", 2.0 / 3.0},    // blocks "a"+"b": 2*2/6
		{"night", "nacht", 0.6},      // blocks "n"+"ht": 2*3/10
		{"abcabba", "cbabac", 6.0 / 13.0}, // blocks "ab"+"a"
	}
	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"abcd", "bcde"},
		{"what is the capital of france", "capital of france"},
		{"", "nonempty"},
		{"aaa", "aa"},
		{"abab", "baba"},
		{"xaybz", "zbyax"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarityRange(t *testing.T) {
	pairs := [][2]string{
		{"a", "b"}, {"long string with many words", "short"}, {"abc", "abc"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, outside [0,1]", p[0], p[1], got)
		}
	}
}
