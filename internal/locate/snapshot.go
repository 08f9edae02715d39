package locate

import (
	"encoding/json"
	"fmt"
)

// snapshot is the serialized form of a built [Locator]. Only the normalized
// word list and tuning parameters are stored; windows and the trigram index
// are rebuilt on restore, since Build is deterministic and cheap next to
// shipping an inverted index over the wire.
type snapshot struct {
	Words       []string `json:"words"`
	WindowWords int      `json:"window_size_words"`
	StepWords   int      `json:"step_size_words"`
	TopK        int      `json:"top_k"`
}

// Snapshot serializes the built locator state as JSON, so a host can cache
// script preprocessing between sessions instead of re-reading the script.
func (l *Locator) Snapshot() ([]byte, error) {
	data, err := json.Marshal(snapshot{
		Words:       l.words,
		WindowWords: l.windowWords,
		StepWords:   l.stepWords,
		TopK:        l.topK,
	})
	if err != nil {
		return nil, fmt.Errorf("locate: marshal snapshot: %w", err)
	}
	return data, nil
}

// Restore rebuilds a [Locator] from a [Locator.Snapshot] payload.
func Restore(data []byte) (*Locator, error) {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("locate: unmarshal snapshot: %w", err)
	}

	l := New(
		WithWindowWords(s.WindowWords),
		WithStepWords(s.StepWords),
		WithTopK(s.TopK),
	)

	if len(s.Words) > 0 {
		l.buildFromWords(s.Words)
	}
	return l, nil
}

// buildFromWords windows and indexes words that are already normalized
// tokens.
func (l *Locator) buildFromWords(words []string) {
	if len(words) == 0 {
		l.words, l.windows, l.index = nil, nil, nil
		return
	}

	// A step larger than the window would leave words between windows
	// uncovered by any window at all.
	l.stepWords = min(l.stepWords, l.windowWords)

	var windows []window
	index := make(map[string][]int)

	for start, id := 0, 0; start < len(words); start, id = start+l.stepWords, id+1 {
		end := min(start+l.windowWords, len(words))
		w := window{id: id, start: start, end: end - 1, words: words[start:end]}

		for _, gram := range tokenNGrams(w.words, indexGramWords) {
			if ids := index[gram]; len(ids) == 0 || ids[len(ids)-1] != id {
				index[gram] = append(ids, id)
			}
		}
		windows = append(windows, w)

		if end == len(words) {
			break
		}
	}

	l.words = words
	l.windows = windows
	l.index = index
}
