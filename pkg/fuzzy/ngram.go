package fuzzy

// NGramSimilarity returns an overlap-based similarity score in [0, 1] between
// a and b using length-n contiguous code-point substrings of the normalized
// inputs. n values below 1 are clamped to 1.
//
// Overlap is the Sørensen–Dice coefficient counted with multiplicity,
// 2·|A∩B| / (|A|+|B|) over the two n-gram multisets, so a substring occurring
// three times in one input and twice in the other contributes twice — not
// once, as set membership would. Multiset counting keeps repeated phrases
// from being over-credited.
//
// When either normalized input is shorter than n code points the ratio is
// undefined, and the score falls back to exact matching: 1.0 when the
// normalized strings are equal, 0.0 otherwise.
func NGramSimilarity(a, b string, n int) float64 {
	if n < 1 {
		n = 1
	}

	na := Normalize(a)
	nb := Normalize(b)
	ra := []rune(na)
	rb := []rune(nb)

	if len(ra) < n || len(rb) < n {
		if na == nb {
			return 1.0
		}
		return 0.0
	}

	countsA := ngramCounts(ra, n)
	countsB := ngramCounts(rb, n)

	totalA := len(ra) - n + 1
	totalB := len(rb) - n + 1

	intersection := 0
	for gram, ca := range countsA {
		if cb, ok := countsB[gram]; ok {
			intersection += min(ca, cb)
		}
	}

	return 2.0 * float64(intersection) / float64(totalA+totalB)
}

// ngramCounts returns the multiset of length-n code-point substrings of rs
// as a gram → occurrence-count map.
func ngramCounts(rs []rune, n int) map[string]int {
	counts := make(map[string]int, len(rs)-n+1)
	for i := 0; i+n <= len(rs); i++ {
		counts[string(rs[i:i+n])]++
	}
	return counts
}
