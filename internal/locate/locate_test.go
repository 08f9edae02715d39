package locate_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/langdu/langdu/internal/locate"
)

func buildLocator(t *testing.T, script string, opts ...locate.Option) *locate.Locator {
	t.Helper()
	l := locate.New(opts...)
	l.Build(script)
	return l
}

func TestQuery_ExactSnippet(t *testing.T) {
	t.Parallel()

	l := buildLocator(t, "the quick brown fox jumps over the lazy dog")

	m, ok := l.Query("quick brown fox jumps")
	if !ok {
		t.Fatal("Query(exact snippet): no match, want one")
	}
	if m.MatchedText != "quick brown fox jumps" {
		t.Errorf("MatchedText = %q, want %q", m.MatchedText, "quick brown fox jumps")
	}
	if m.StartWord != 1 || m.EndWord != 4 {
		t.Errorf("word range = [%d, %d], want [1, 4]", m.StartWord, m.EndWord)
	}
	if m.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0 for an exact snippet", m.Confidence)
	}
}

func TestQuery_OneWordSubstitution(t *testing.T) {
	t.Parallel()

	l := buildLocator(t, "the quick brown fox jumps over the lazy dog")

	m, ok := l.Query("quick brawn fox jumps")
	if !ok {
		t.Fatal("Query(substituted snippet): no match, want one")
	}
	if !strings.Contains(m.MatchedText, "fox") {
		t.Errorf("MatchedText = %q, want it to cover the fox span", m.MatchedText)
	}
}

func TestQuery_MissingWord(t *testing.T) {
	t.Parallel()

	l := buildLocator(t, "the quick brown fox jumps over the lazy dog")

	if _, ok := l.Query("quick fox jumps over"); !ok {
		t.Fatal("Query(snippet with dropped word): no match, want one")
	}
}

func TestQuery_ExtraWord(t *testing.T) {
	t.Parallel()

	l := buildLocator(t, "the quick brown fox jumps over the lazy dog")

	if _, ok := l.Query("quick brown fox really jumps over"); !ok {
		t.Fatal("Query(snippet with inserted word): no match, want one")
	}
}

func TestQuery_UnrelatedSnippet(t *testing.T) {
	t.Parallel()

	l := buildLocator(t, "the quick brown fox jumps over the lazy dog")

	if m, ok := l.Query("unrelated galaxy banana quantum phrase"); ok {
		if m.Confidence >= 0.4 {
			t.Errorf("unrelated snippet matched with Confidence %v, want < 0.4", m.Confidence)
		}
	}
}

func TestQuery_HomophoneToken(t *testing.T) {
	t.Parallel()

	l := buildLocator(t, "they left their coats by the door before dinner")

	// "there" for "their" is more than one edit but phonetically identical.
	m, ok := l.Query("left there coats by")
	if !ok {
		t.Fatal("Query(homophone snippet): no match, want one")
	}
	if !strings.Contains(m.MatchedText, "coats") {
		t.Errorf("MatchedText = %q, want it to cover the coats span", m.MatchedText)
	}
}

func TestQuery_CJKScript(t *testing.T) {
	t.Parallel()

	l := buildLocator(t, "今天 天气 很 好 我们 一起 去 公园 散步 然后 回家 吃饭")

	m, ok := l.Query("一起 去 公园")
	if !ok {
		t.Fatal("Query(CJK snippet): no match, want one")
	}
	if m.MatchedText != "一起 去 公园" {
		t.Errorf("MatchedText = %q, want %q", m.MatchedText, "一起 去 公园")
	}
}

func TestQuery_EmptyInputs(t *testing.T) {
	t.Parallel()

	empty := locate.New()
	if _, ok := empty.Query("anything"); ok {
		t.Error("Query on unbuilt locator returned a match")
	}
	if empty.Ready() {
		t.Error("Ready() = true on unbuilt locator")
	}

	l := buildLocator(t, "some script text here")
	if _, ok := l.Query("   ,,, "); ok {
		t.Error("Query(punctuation-only snippet) returned a match")
	}
}

func TestQuery_SpansWindowBoundary(t *testing.T) {
	t.Parallel()

	// Small windows with a generous overlap: a snippet crossing one window's
	// edge must land intact in a neighbouring window.
	var words []string
	for i := 0; i < 60; i++ {
		words = append(words, fmt.Sprintf("word%02d", i))
	}
	l := buildLocator(t, strings.Join(words, " "),
		locate.WithWindowWords(20), locate.WithStepWords(5), locate.WithTopK(10))

	m, ok := l.Query("word17 word18 word19 word20 word21")
	if !ok {
		t.Fatal("Query(boundary-spanning snippet): no match, want one")
	}
	if m.StartWord != 17 || m.EndWord != 21 {
		t.Errorf("word range = [%d, %d], want [17, 21]", m.StartWord, m.EndWord)
	}
}

func TestQuery_StepLargerThanWindow(t *testing.T) {
	t.Parallel()

	// A step wider than the window is clamped to it, so no script word is
	// left outside every window.
	var words []string
	for i := 0; i < 60; i++ {
		words = append(words, fmt.Sprintf("word%02d", i))
	}
	l := buildLocator(t, strings.Join(words, " "),
		locate.WithWindowWords(10), locate.WithStepWords(30))

	// Without clamping, windows would start at words 0 and 30 only, and
	// this snippet would fall in the uncovered span in between.
	m, ok := l.Query("word12 word13 word14 word15")
	if !ok {
		t.Fatal("Query(snippet between unclamped window starts): no match, want one")
	}
	if m.StartWord != 12 || m.EndWord != 15 {
		t.Errorf("word range = [%d, %d], want [12, 15]", m.StartWord, m.EndWord)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	l := buildLocator(t, "a b c d e f g h i j k l m n o p q r")

	data, err := l.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored, err := locate.Restore(data)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.WordCount() != l.WordCount() {
		t.Fatalf("restored WordCount = %d, want %d", restored.WordCount(), l.WordCount())
	}

	m, ok := restored.Query("f g h")
	if !ok {
		t.Fatal("Query on restored locator: no match, want one")
	}
	if m.MatchedText != "f g h" {
		t.Errorf("MatchedText = %q, want %q", m.MatchedText, "f g h")
	}
}

func TestRestore_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := locate.Restore([]byte("{not json")); err == nil {
		t.Error("Restore(garbage) = nil error, want error")
	}
}

func TestQuery_LargeScript(t *testing.T) {
	t.Parallel()

	// A long repetitive script exercises candidate ranking and early
	// abandoning; the query must still land on a correct occurrence.
	var words []string
	for i := 0; i < 20000; i++ {
		words = append(words, fmt.Sprintf("word%d", i%2000))
	}
	l := buildLocator(t, strings.Join(words, " "))

	m, ok := l.Query("word120 word121 word122 word123 word124 word125")
	if !ok {
		t.Fatal("Query on large script: no match, want one")
	}
	if m.Confidence < 0.9 {
		t.Errorf("Confidence = %v, want >= 0.9 for a verbatim snippet", m.Confidence)
	}
}
