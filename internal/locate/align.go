package locate

import (
	"math"

	"github.com/antzucaro/matchr"

	"github.com/langdu/langdu/pkg/fuzzy"
)

// Smith-Waterman scoring. An exact token match is worth twice a fuzzy one;
// mismatches and gaps cost equally, so a one-word insertion and a one-word
// substitution degrade a placement by the same amount.
const (
	scoreExact    = 2
	scoreFuzzy    = 1
	scoreMismatch = -1
	scoreGap      = -1

	minScore = math.MinInt32
)

// alignment is the best local alignment of a snippet inside one window.
type alignment struct {
	score         int
	startInWindow int
	endInWindow   int
}

// tokenScore rates one snippet token against one window token. Unequal
// tokens still earn the fuzzy score when within one edit of each other, or
// when their Double Metaphone codes agree — a homophone heard wrong
// ("there"/"their") aligns even though its spelling drifted further than
// one edit. Metaphone produces no codes for CJK tokens, so ideographic text
// relies on the edit-distance path alone.
func tokenScore(a, b string) int {
	if a == b {
		return scoreExact
	}
	if fuzzy.Distance(a, b) <= 1 {
		return scoreFuzzy
	}
	if p1, s1 := matchr.DoubleMetaphone(a); p1 != "" {
		p2, s2 := matchr.DoubleMetaphone(b)
		if p1 == p2 || (s1 != "" && s1 == s2) {
			return scoreFuzzy
		}
	}
	return scoreMismatch
}

// traceback directions.
const (
	traceStop uint8 = iota
	traceDiag
	traceUp
	traceLeft
)

// smithWaterman locally aligns the snippet tokens against one window's
// tokens and returns the best-scoring region. bestSoFar enables early
// abandoning: once the theoretical maximum for the remaining rows cannot
// beat the best score found in other windows, the scan stops.
func smithWaterman(snippet, window []string, bestSoFar int) alignment {
	m, n := len(snippet), len(window)
	if m == 0 || n == 0 {
		return alignment{}
	}

	dp := make([][]int, m+1)
	trace := make([][]uint8, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		trace[i] = make([]uint8, n+1)
	}

	maxScore := 0
	maxI, maxJ := 0, 0

	for i := 1; i <= m; i++ {
		rowMax := 0
		for j := 1; j <= n; j++ {
			diag := dp[i-1][j-1] + tokenScore(snippet[i-1], window[j-1])
			up := dp[i-1][j] + scoreGap
			left := dp[i][j-1] + scoreGap

			best, dir := 0, traceStop
			if diag > best {
				best, dir = diag, traceDiag
			}
			if up > best {
				best, dir = up, traceUp
			}
			if left > best {
				best, dir = left, traceLeft
			}

			dp[i][j] = best
			if best > 0 {
				trace[i][j] = dir
			}
			if best > maxScore {
				maxScore, maxI, maxJ = best, i, j
			}
			if best > rowMax {
				rowMax = best
			}
		}

		// Even a perfect run of exact matches on the remaining snippet
		// tokens cannot reach the best score already found elsewhere.
		if rowMax+(m-i)*scoreExact < bestSoFar {
			break
		}
	}

	if maxScore <= 0 {
		return alignment{}
	}

	// Trace back from the maximum to find where the aligned region starts.
	i, j := maxI, maxJ
	endJ := maxJ - 1
	for i > 0 && j > 0 && trace[i][j] != traceStop {
		switch trace[i][j] {
		case traceDiag:
			i, j = i-1, j-1
		case traceUp:
			i--
		case traceLeft:
			j--
		}
	}

	return alignment{score: maxScore, startInWindow: j, endInWindow: endJ}
}
