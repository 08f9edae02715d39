package fuzzy_test

import (
	"testing"

	"github.com/langdu/langdu/pkg/fuzzy"
)

func TestNGramSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		n    int
		want float64
	}{
		{"identical", "abcd", "abcd", 2, 1.0},
		{"both empty", "", "", 2, 1.0},
		{"empty vs nonempty", "", "abc", 2, 0.0},
		{"fallback unequal", "ab", "abc", 4, 0.0},
		{"fallback equal", "ab", "ab", 4, 1.0},
		{"disjoint", "aaaa", "bbbb", 2, 0.0},
		// A = {ab, bc, cd}, B = {ab, bc, ce}: 2·2/(3+3).
		{"partial overlap", "abcd", "abce", 2, 2.0 / 3.0},
		// Multiset counting: A = {aa, aa}, B = {aa}: 2·1/(2+1), not 2·1/(1+1).
		{"multiplicity", "aaa", "aa", 2, 2.0 / 3.0},
		{"cjk bigrams", "你好世界", "你好世界", 2, 1.0},
		{"n clamped to one", "abc", "abd", 0, 2.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fuzzy.NGramSimilarity(tt.a, tt.b, tt.n); !approxEqual(got, tt.want) {
				t.Errorf("NGramSimilarity(%q, %q, %d) = %v, want %v", tt.a, tt.b, tt.n, got, tt.want)
			}
		})
	}
}

func TestNGramSimilarity_TranspositionTolerance(t *testing.T) {
	t.Parallel()

	// Swapped halves share most bigrams, so n-gram overlap stays high where
	// character-level similarity collapses.
	ngram := fuzzy.NGramSimilarity("你好世界", "世界你好", 2)
	char := fuzzy.Similarity("你好世界", "世界你好")
	if ngram <= char {
		t.Errorf("expected n-gram score %v to beat character score %v on transposed input", ngram, char)
	}
	if ngram < 0.5 {
		t.Errorf("NGramSimilarity on transposed halves = %v, want >= 0.5", ngram)
	}
}
