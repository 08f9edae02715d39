package fuzzy

// Distance returns the Levenshtein edit distance between a and b after
// normalization: the minimum number of single code-point insertions,
// deletions, and substitutions transforming one into the other.
//
// The edit unit is one Unicode code point, so one CJK ideograph counts as one
// edit — never one byte, and never a multi-rune grapheme cluster. Distance is
// a true metric over normalized strings: non-negative, symmetric, zero
// exactly when the normalized forms are equal, and obeying the triangle
// inequality.
//
// Time is O(|a|·|b|), space O(min(|a|,|b|)).
func Distance(a, b string) int {
	return runeDistance([]rune(Normalize(a)), []rune(Normalize(b)))
}

// Similarity returns a character-level similarity score in [0, 1] between a
// and b, defined as 1 − Distance(a,b)/max(|a|,|b|) over the normalized
// forms. Two empty (or punctuation-only) strings score 1.0; an empty string
// against a nonempty one scores 0.0.
func Similarity(a, b string) float64 {
	ra := []rune(Normalize(a))
	rb := []rune(Normalize(b))

	maxLen := max(len(ra), len(rb))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(runeDistance(ra, rb))/float64(maxLen)
}

// runeDistance is the two-row dynamic-programming Levenshtein kernel over
// pre-normalized rune slices.
func runeDistance(ra, rb []rune) int {
	// Keep rb the shorter side so the rows are O(min(m,n)).
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
