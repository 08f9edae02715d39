// Package fuzzy implements the text-similarity engine that synchronizes
// audio playback to on-screen text: given a noisy speech-to-text transcript
// fragment and a clean reference fragment, it scores how closely the two
// match despite misheard characters, merged or split words, and filler.
//
// The package provides comparison primitives at three granularities —
// character-level edit distance ([Distance], [Similarity]), code-point
// n-gram overlap ([NGramSimilarity]), and word alignment ([WordSimilarity],
// [WordToPhraseSimilarity]) — plus a weighted fusion of all three
// ([CombinedSimilarity]) and a thresholded verdict ([AreSimilar]).
//
// Every operation normalizes both operands through [Normalize] before
// comparing, accepts arbitrary Unicode including CJK ideographs (one
// ideograph = one edit unit), and returns a score bounded in [0, 1]. All
// functions are pure and stateless: output depends only on the arguments, so
// concurrent calls need no coordination, and a caller comparing one
// transcript against many candidate chunks may fan out freely.
//
// Out-of-range configuration (an n-gram width below 1, a threshold outside
// [0, 1]) is clamped to the nearest valid value rather than rejected; every
// function is total over all string inputs.
package fuzzy

import "strings"

// Weights configures the signal fusion performed by [Weights.Combined]. Each
// field scales one similarity signal; the fused score is the weighted sum,
// clamped to [0, 1].
//
// Weights should sum to at most 1.0 for an interpretable score. The zero
// value scores everything 0; start from [DefaultWeights].
type Weights struct {
	// WordLevel scales [WordSimilarity]. It carries the largest default
	// weight: STT errors are more often character noise inside a correctly
	// recognized word than a wrong-word substitution, so agreement at word
	// granularity is the strongest evidence of a true match.
	WordLevel float64

	// Trigram, Bigram, and Quadgram scale [NGramSimilarity] at n = 3, 2,
	// and 4. The three widths together tolerate transpositions and partial
	// overlaps that character-level distance punishes.
	Trigram  float64
	Bigram   float64
	Quadgram float64

	// Character scales the character-level [Similarity] score.
	Character float64

	// Substring is a fixed bonus added when either normalized input
	// contains the other outright, catching fragments that are clean
	// prefixes or suffixes of the chunk.
	Substring float64
}

// DefaultWeights returns the standard fusion weighting: word-level 0.50,
// trigram 0.15, bigram 0.15, quadgram 0.10, character 0.05, substring bonus
// 0.05. The components sum to 1.0.
func DefaultWeights() Weights {
	return Weights{
		WordLevel: 0.50,
		Trigram:   0.15,
		Bigram:    0.15,
		Quadgram:  0.10,
		Character: 0.05,
		Substring: 0.05,
	}
}

// Combined returns the weighted fusion of the character-level, n-gram, and
// word-level similarity signals for a (transcript, chunk) pair, clamped to
// [0, 1]. Two empty inputs score 1.0; empty against nonempty scores 0.0.
func (w Weights) Combined(transcript, chunk string) float64 {
	t := Normalize(transcript)
	c := Normalize(chunk)

	if t == "" || c == "" {
		if t == c {
			return 1.0
		}
		return 0.0
	}

	score := w.WordLevel*WordSimilarity(t, c) +
		w.Trigram*NGramSimilarity(t, c, 3) +
		w.Bigram*NGramSimilarity(t, c, 2) +
		w.Quadgram*NGramSimilarity(t, c, 4) +
		w.Character*Similarity(t, c)

	if strings.Contains(c, t) || strings.Contains(t, c) {
		score += w.Substring
	}

	return clamp01(score)
}

// CombinedSimilarity fuses all similarity signals for a (transcript, chunk)
// pair using [DefaultWeights]. See [Weights.Combined].
func CombinedSimilarity(transcript, chunk string) float64 {
	return DefaultWeights().Combined(transcript, chunk)
}

// AreSimilar reports whether word1 and word2 are similar enough to treat as
// the same word: true exactly when their character-level [Similarity] is at
// least threshold. Thresholds outside [0, 1] are clamped.
//
// The threshold is supplied fresh on every call and never stored; callers
// such as per-word highlighting own their own sensitivity.
func AreSimilar(word1, word2 string, threshold float64) bool {
	return Similarity(word1, word2) >= clamp01(threshold)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
