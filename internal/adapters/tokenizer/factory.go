package tokenizer

import "github.com/baditaflorin/go_doc_similarity/internal/ports"

// TokenizerFactory creates the appropriate tokenizer based on performance requirements
type TokenizerFactory struct{}

// NewTokenizerFactory creates a new tokenizer factory
func NewTokenizerFactory() *TokenizerFactory {
	return &TokenizerFactory{}
}

// TokenizerType selects a tokenizer implementation
type TokenizerType int

const (
	// DefaultTokenizerType is the reference rune-by-rune tokenizer
	DefaultTokenizerType TokenizerType = iota
	// FastTokenizerType uses a precomputed ASCII table and buffer pooling
	FastTokenizerType
)

// CreateTokenizer creates a tokenizer of the specified type
func (f *TokenizerFactory) CreateTokenizer(tokenizerType TokenizerType) ports.Tokenizer {
	switch tokenizerType {
	case FastTokenizerType:
		return NewFastTokenizer()
	default:
		return NewDefaultTokenizer()
	}
}
