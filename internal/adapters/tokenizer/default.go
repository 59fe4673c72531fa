// Package tokenizer turns raw French text into the token sequences the
// similarity measures compare.
package tokenizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
)

// DefaultTokenizer implements the reference tokenization:
// lowercase, strip punctuation and digits, split on whitespace, drop stop words.
type DefaultTokenizer struct{}

// NewDefaultTokenizer creates a new default tokenizer.
func NewDefaultTokenizer() ports.Tokenizer {
	return &DefaultTokenizer{}
}

// isWordRune matches letters, numbers and the underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokenize splits text into normalized tokens. It never fails; the result is
// empty when nothing but punctuation, digits or stop words remain.
func (t *DefaultTokenizer) Tokenize(text string) domain.TokenSequence {
	if text == "" {
		return domain.TokenSequence{}
	}

	// Casers carry state, so each call gets its own.
	lower := cases.Lower(language.French)
	text = lower.String(norm.NFC.String(text))

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			// dropped
		case isWordRune(r), unicode.IsSpace(r):
			sb.WriteRune(r)
		}
	}

	fields := strings.Fields(sb.String())
	tokens := make(domain.TokenSequence, 0, len(fields))
	for _, f := range fields {
		if IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
