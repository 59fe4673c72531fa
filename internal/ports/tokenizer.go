package ports

import "github.com/baditaflorin/go_doc_similarity/internal/core/domain"

// Tokenizer defines the interface for turning raw text into tokens.
type Tokenizer interface {
	Tokenize(text string) domain.TokenSequence
}
