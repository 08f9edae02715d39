package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// foldForms canonicalizes visually equivalent character forms before
// comparison: full-width CJK punctuation and Latin become their half-width
// counterparts, compatibility variants collapse via NFKD, combining marks
// (accents) are stripped, and the result recomposes to NFC.
var foldForms = transform.Chain(
	width.Fold,
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize canonicalizes text for comparison. Steps, in order:
//
//  1. Width and compatibility folding (ｈｅｌｌｏ → hello, ① → 1) with
//     combining marks removed (café → cafe).
//  2. Case folding via [strings.ToLower].
//  3. Every rune that is not a letter, digit, or whitespace becomes a space,
//     so punctuation never participates in matching.
//  4. Whitespace runs collapse to single spaces and the result is trimmed.
//
// Normalize never fails and is idempotent: applying it to already-normalized
// text is a no-op. Empty or whitespace-only input normalizes to "".
//
// Every comparison in this package normalizes both operands through this one
// function, so callers may pass raw or pre-normalized text interchangeably.
func Normalize(text string) string {
	folded, _, err := transform.String(foldForms, text)
	if err != nil {
		// The chain only fails on malformed UTF-8; fall back to the raw
		// bytes so comparison stays total.
		folded = text
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it into order-preserved word tokens.
// Whitespace-only input yields a nil slice.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}
