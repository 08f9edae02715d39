package fuzzy_test

import (
	"testing"

	"github.com/langdu/langdu/pkg/fuzzy"
)

func TestWordToPhraseSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		word, phrase string
		want         float64
	}{
		{"word equals whole phrase", "你好", "你好", 1.0},
		{"both empty", "", "", 1.0},
		{"empty word", "", "今天 下雨", 0.0},
		{"empty phrase", "下雨", "", 0.0},
		// The recognized token spans two reference tokens; the concatenated
		// sub-span "下雨" matches exactly.
		{"split reference tokens", "下雨", "今天 下 雨 了", 1.0},
		{"latin split tokens", "thunderstorm", "severe thunder storm warning", 1.0},
		{"single matching token", "天气", "今天 天气 不错", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fuzzy.WordToPhraseSimilarity(tt.word, tt.phrase); !approxEqual(got, tt.want) {
				t.Errorf("WordToPhraseSimilarity(%q, %q) = %v, want %v", tt.word, tt.phrase, got, tt.want)
			}
		})
	}
}

func TestWordToPhraseSimilarity_BeatsWholePhraseComparison(t *testing.T) {
	t.Parallel()

	// The best sub-span score must never be worse than comparing the word
	// against the entire phrase directly.
	word := "下雨"
	phrase := "今天 下 雨 了"
	spanned := fuzzy.WordToPhraseSimilarity(word, phrase)
	whole := fuzzy.Similarity(word, phrase)
	if spanned < whole {
		t.Errorf("WordToPhraseSimilarity = %v, want >= whole-phrase Similarity %v", spanned, whole)
	}
	if spanned < 0.9 {
		t.Errorf("WordToPhraseSimilarity(%q, %q) = %v, want a high score via sub-span match", word, phrase, spanned)
	}
}
