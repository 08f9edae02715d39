package fuzzy

// nearMatchThreshold is the minimum character-level [Similarity] score at
// which two unequal tokens are still treated as matched during word
// alignment. STT noise is usually one or two misheard characters inside an
// otherwise-correct word ("天气" heard as "天汽"), so alignment accepts such
// pairs rather than requiring exact equality.
const nearMatchThreshold = 0.70

// WordSimilarity returns a word-granularity similarity score in [0, 1]
// between a transcript fragment and a reference chunk.
//
// Both inputs are normalized and tokenized; the two token sequences are then
// aligned with a longest-common-subsequence style dynamic program in which a
// token pair counts as matched when the tokens are equal or their
// character-level [Similarity] is at least 0.70. The score is the number of
// aligned token pairs divided by the reference chunk's token count.
//
// This is the primary signal for deciding whether a transcript fragment
// corresponds to a script position: recognition errors are far more often
// per-character noise within a correct word sequence than wholesale word
// substitution, and order-preserving alignment rewards exactly that case.
func WordSimilarity(transcript, chunk string) float64 {
	ts := Tokenize(transcript)
	cs := Tokenize(chunk)

	if len(cs) == 0 {
		if len(ts) == 0 {
			return 1.0
		}
		return 0.0
	}
	if len(ts) == 0 {
		return 0.0
	}

	matched := alignTokens(ts, cs)
	return float64(matched) / float64(len(cs))
}

// alignTokens returns the length of the longest order-preserving alignment
// between the two token sequences under [tokensMatch].
func alignTokens(ts, cs []string) int {
	prev := make([]int, len(cs)+1)
	curr := make([]int, len(cs)+1)

	for i := 1; i <= len(ts); i++ {
		for j := 1; j <= len(cs); j++ {
			if tokensMatch(ts[i-1], cs[j-1]) {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
		clear(curr)
	}
	return prev[len(cs)]
}

// tokensMatch reports whether two normalized tokens align: exactly equal, or
// near-matched per [nearMatchThreshold].
func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	return Similarity(a, b) >= nearMatchThreshold
}
