package fuzzy

import "strings"

// WordToPhraseSimilarity returns the best similarity score in [0, 1] between
// a single word and any contiguous sub-span of a multi-token phrase,
// including the whole phrase.
//
// Speech recognizers drift on segmentation: one recognized token may cover
// part of a multi-word reference phrase ("下雨" against the spaced-out
// reference "下 雨 了"), or a reference word may arrive split across tokens.
// Scoring against every sub-span — in both its space-joined and concatenated
// forms, so CJK token boundaries cost nothing — keeps such drift from
// reading as a mismatch.
func WordToPhraseSimilarity(word, phrase string) float64 {
	w := Normalize(word)
	tokens := strings.Fields(Normalize(phrase))

	if len(tokens) == 0 {
		if w == "" {
			return 1.0
		}
		return 0.0
	}
	if w == "" {
		return 0.0
	}

	best := 0.0
	for i := 0; i < len(tokens); i++ {
		for j := i; j < len(tokens); j++ {
			span := tokens[i : j+1]
			if s := Similarity(w, strings.Join(span, " ")); s > best {
				best = s
			}
			if len(span) > 1 {
				if s := Similarity(w, strings.Join(span, "")); s > best {
					best = s
				}
			}
			if best == 1.0 {
				return best
			}
		}
	}
	return best
}
