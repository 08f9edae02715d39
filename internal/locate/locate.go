// Package locate finds where in a reference script a noisy transcript
// snippet belongs.
//
// A [Locator] is built once from the full script text: the script is
// normalized, split into overlapping word windows, and each window's token
// trigrams are recorded in an inverted index. A query then normalizes the
// snippet, ranks candidate windows by trigram overlap, and runs
// Smith-Waterman local alignment over the best candidates to pin down the
// exact word range, tolerating the per-word noise a speech recognizer
// produces.
//
// The pairwise scoring primitives themselves live in [fuzzy]; this package
// adds the windowed search on top. A Locator is read-only after [Build], so
// concurrent [Locator.Query] calls need no locking.
package locate

import (
	"sort"
	"strings"

	"github.com/langdu/langdu/pkg/fuzzy"
)

const (
	defaultWindowWords = 100
	defaultStepWords   = 30
	defaultTopK        = 20

	// indexGramWords is the token n-gram width used for the inverted index.
	indexGramWords = 3
)

// Option is a functional option for configuring a [Locator].
type Option func(*Locator)

// WithWindowWords sets the number of words per script window. Default: 100.
func WithWindowWords(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.windowWords = n
		}
	}
}

// WithStepWords sets the stride between consecutive windows. Default: 30.
// Windows overlap when the step is smaller than the window size, so a match
// straddling one window boundary still falls wholly inside a neighbour.
// A step larger than the window is clamped to the window size at build time.
func WithStepWords(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.stepWords = n
		}
	}
}

// WithTopK sets how many trigram-ranked candidate windows are aligned per
// query. Default: 20.
func WithTopK(n int) Option {
	return func(l *Locator) {
		if n > 0 {
			l.topK = n
		}
	}
}

// window is one contiguous span of script words.
type window struct {
	id    int
	start int // absolute index of the first word
	end   int // absolute index of the last word, inclusive
	words []string
}

// Match describes where a transcript snippet landed in the script.
type Match struct {
	// WindowID identifies the script window the alignment was found in.
	WindowID int

	// StartWord and EndWord are absolute word indexes into the normalized
	// script, inclusive on both ends.
	StartWord int
	EndWord   int

	// MatchedText is the normalized script text between StartWord and EndWord.
	MatchedText string

	// AlignmentScore is the raw Smith-Waterman score of the best local
	// alignment.
	AlignmentScore float64

	// Confidence scales the alignment score by the best achievable score
	// for the snippet length, giving a rough [0, 1] quality signal. Scores
	// above roughly 0.4 indicate a trustworthy placement.
	Confidence float64
}

// Locator is a prebuilt fuzzy index over one reference script.
// The zero value is unusable; construct with [New] and call [Locator.Build].
type Locator struct {
	windowWords int
	stepWords   int
	topK        int

	words   []string
	windows []window
	index   map[string][]int // token trigram → ids of windows containing it
}

// New returns an empty [Locator] with the supplied options applied.
func New(opts ...Option) *Locator {
	l := &Locator{
		windowWords: defaultWindowWords,
		stepWords:   defaultStepWords,
		topK:        defaultTopK,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Build preprocesses the script: normalization, windowing, and trigram
// indexing. Calling Build again replaces the previous script entirely.
// After Build returns the Locator is read-only.
func (l *Locator) Build(script string) {
	l.buildFromWords(fuzzy.Tokenize(script))
}

// Ready reports whether Build has produced at least one window.
func (l *Locator) Ready() bool {
	return len(l.windows) > 0
}

// WordCount returns the number of normalized script words.
func (l *Locator) WordCount() int {
	return len(l.words)
}

// Query locates the transcript snippet in the script. The boolean result is
// false when the script is empty, the snippet normalizes to nothing, or no
// alignment scores above zero.
func (l *Locator) Query(snippet string) (Match, bool) {
	if len(l.windows) == 0 {
		return Match{}, false
	}
	tokens := fuzzy.Tokenize(snippet)
	if len(tokens) == 0 {
		return Match{}, false
	}

	best := alignment{score: minScore}
	bestID := -1
	for _, id := range l.candidates(tokens) {
		w := l.windows[id]
		a := smithWaterman(tokens, w.words, max(best.score, 0))
		if a.score > best.score {
			best = a
			bestID = id
		}
	}
	if bestID < 0 || best.score <= 0 {
		return Match{}, false
	}

	w := l.windows[bestID]
	start := w.start + best.startInWindow
	end := w.start + best.endInWindow
	if start >= len(l.words) || end >= len(l.words) || start > end {
		return Match{}, false
	}

	return Match{
		WindowID:       bestID,
		StartWord:      start,
		EndWord:        end,
		MatchedText:    strings.Join(l.words[start:end+1], " "),
		AlignmentScore: float64(best.score),
		Confidence:     float64(best.score) / float64(scoreExact*len(tokens)),
	}, true
}

// candidates ranks windows by shared trigram count and returns the top-K ids.
// Snippets too short or too garbled to hit the index fall back to the first
// K windows so alignment still gets a chance.
func (l *Locator) candidates(tokens []string) []int {
	overlap := make(map[int]int)
	for _, gram := range tokenNGrams(tokens, indexGramWords) {
		for _, id := range l.index[gram] {
			overlap[id]++
		}
	}

	if len(overlap) == 0 {
		n := min(l.topK, len(l.windows))
		ids := make([]int, n)
		for i := range ids {
			ids[i] = i
		}
		return ids
	}

	ids := make([]int, 0, len(overlap))
	for id := range overlap {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if overlap[ids[i]] != overlap[ids[j]] {
			return overlap[ids[i]] > overlap[ids[j]]
		}
		return ids[i] < ids[j] // deterministic order among ties
	})
	if len(ids) > l.topK {
		ids = ids[:l.topK]
	}
	return ids
}

// tokenNGrams returns the space-joined n-grams of tokens, in order.
func tokenNGrams(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}
