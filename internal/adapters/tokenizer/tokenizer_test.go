package tokenizer

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.TokenSequence
	}{
		{name: "empty", text: "", want: domain.TokenSequence{}},
		{name: "whitespace only", text: " \t\n ", want: domain.TokenSequence{}},
		{name: "only stop words", text: "Le la LES et ou", want: domain.TokenSequence{}},
		{name: "punctuation and stop words", text: "Le chat, et le chien!", want: domain.TokenSequence{"chat", "chien"}},
		{name: "apostrophe joins", text: "L'homme où 2024 va", want: domain.TokenSequence{"lhomme", "va"}},
		{name: "digits inside words", text: "covid19 a1b2", want: domain.TokenSequence{"covid", "ab"}},
		{name: "accents kept", text: "Où ÉTAIT-il ?", want: domain.TokenSequence{"étaitil"}},
		{name: "underscore is a word rune", text: "snake_case", want: domain.TokenSequence{"snake_case"}},
		{name: "decomposed accents are composed", text: "e\u0301te\u0301", want: domain.TokenSequence{"\u00e9t\u00e9"}},
		{name: "order preserved with repeats", text: "b a b", want: domain.TokenSequence{"b", "a", "b"}},
		{name: "english words are not stop words", text: "the cat sat", want: domain.TokenSequence{"the", "cat", "sat"}},
	}

	factory := NewTokenizerFactory()
	for _, typ := range []TokenizerType{DefaultTokenizerType, FastTokenizerType} {
		tok := factory.CreateTokenizer(typ)
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got := tok.Tokenize(tt.text)
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("type %d: Tokenize(%q) = %q, want %q", typ, tt.text, got, tt.want)
				}
			})
		}
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	tok := NewDefaultTokenizer()
	text := "Le plagiat, c'est copier sans citer."
	first := tok.Tokenize(text)
	second := tok.Tokenize(text)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Tokenize not deterministic: %q vs %q", first, second)
	}
}

func TestFastMatchesDefault(t *testing.T) {
	alphabet := []rune("abcXYZ _-'.,;!?0123456789\t\nLe la é")
	rng := rand.New(rand.NewSource(42))
	def, fast := NewDefaultTokenizer(), NewFastTokenizer()

	for i := 0; i < 500; i++ {
		var sb strings.Builder
		n := rng.Intn(60)
		for j := 0; j < n; j++ {
			sb.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		text := sb.String()

		want, got := def.Tokenize(text), fast.Tokenize(text)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Tokenize(%q): fast %q, default %q", text, got, want)
		}
	}
}

func TestStopWords(t *testing.T) {
	words := StopWords()
	if len(words) != 23 {
		t.Errorf("len(StopWords()) = %d, want 23", len(words))
	}
	for _, w := range []string{"le", "où", "dans", "sous"} {
		if !IsStopWord(w) {
			t.Errorf("IsStopWord(%q) = false", w)
		}
	}
	if IsStopWord("chat") {
		t.Error("IsStopWord(chat) = true")
	}
}
