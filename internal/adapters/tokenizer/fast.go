package tokenizer

import (
	"unicode"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/pool"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
)

// Decisions for ASCII bytes.
const (
	asciiKeep byte = iota
	asciiLower
	asciiSpace
	asciiDrop
)

// FastTokenizer produces the same tokens as DefaultTokenizer with a
// precomputed decision table for ASCII input and a pooled token buffer.
// Non-ASCII input goes through the default path.
type FastTokenizer struct {
	// Pre-computed decision table for ASCII characters (0-127)
	asciiTable [128]byte

	bytePool *pool.BufferPool
	fallback ports.Tokenizer
}

// NewFastTokenizer creates a new fast tokenizer
func NewFastTokenizer() ports.Tokenizer {
	t := &FastTokenizer{
		bytePool: pool.NewBufferPool(64),
		fallback: NewDefaultTokenizer(),
	}

	for i := 0; i < 128; i++ {
		r := rune(i)
		switch {
		case unicode.IsSpace(r):
			t.asciiTable[i] = asciiSpace
		case unicode.IsDigit(r):
			t.asciiTable[i] = asciiDrop
		case unicode.IsUpper(r):
			t.asciiTable[i] = asciiLower
		case isWordRune(r):
			t.asciiTable[i] = asciiKeep
		default:
			t.asciiTable[i] = asciiDrop
		}
	}

	return t
}

// Tokenize splits text into normalized tokens.
func (t *FastTokenizer) Tokenize(text string) domain.TokenSequence {
	if len(text) == 0 {
		return domain.TokenSequence{}
	}

	for i := 0; i < len(text); i++ {
		if text[i] >= 128 {
			return t.fallback.Tokenize(text)
		}
	}

	buffer := t.bytePool.Get()
	defer t.bytePool.Put(buffer)

	tokens := make(domain.TokenSequence, 0, len(text)/6+1)
	flush := func() {
		if len(*buffer) == 0 {
			return
		}
		if _, stop := frenchStopWords[string(*buffer)]; !stop {
			tokens = append(tokens, string(*buffer))
		}
		*buffer = (*buffer)[:0]
	}

	for i := 0; i < len(text); i++ {
		b := text[i]
		switch t.asciiTable[b] {
		case asciiKeep:
			*buffer = append(*buffer, b)
		case asciiLower:
			*buffer = append(*buffer, b+('a'-'A'))
		case asciiSpace:
			flush()
		}
	}
	flush()

	return tokens
}
