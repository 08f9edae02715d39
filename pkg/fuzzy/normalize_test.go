package fuzzy_test

import (
	"testing"

	"github.com/langdu/langdu/pkg/fuzzy"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n  ", ""},
		{"lowercases", "Hello World", "hello world"},
		{"collapses whitespace", "  hello \t world \n", "hello world"},
		{"strips punctuation", "hello, world!", "hello world"},
		{"strips cjk punctuation", "你好，世界！", "你好 世界"},
		{"folds full width", "ＨＥＬＬＯ　Ｗｏｒｌｄ", "hello world"},
		{"strips accents", "Café au Lait", "cafe au lait"},
		{"keeps digits", "track 42", "track 42"},
		{"mixed scripts", "今天weather很好!", "今天weather很好"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fuzzy.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Hello, World!",
		"你好，世界！",
		"ＦＵＬＬ　ｗｉｄｔｈ",
		"Café — déjà vu",
		"  spaced   out  ",
		"",
	}
	for _, in := range inputs {
		once := fuzzy.Normalize(in)
		twice := fuzzy.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := fuzzy.Tokenize("今天 天气, 很好!")
	want := []string{"今天", "天气", "很好"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize: got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokenize token[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := fuzzy.Tokenize("  \t "); got != nil {
		t.Errorf("Tokenize(whitespace) = %v, want nil", got)
	}
}
