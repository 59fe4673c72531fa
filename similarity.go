// Package docsimilarity scores how alike two documents are.
//
// Each text is reduced to a sequence of normalized French word tokens, then
// compared with three independent measures expressed as percentages:
//
//	LCS         = lcs(a, b) / max(|a|, |b|) * 100
//	Levenshtein = (1 - distance(a, b) / max(|a|, |b|)) * 100
//	Cosine      = dot(tf(a), tf(b)) / (|tf(a)| * |tf(b)|) * 100
//
// The mean of the three is classified as low (< 30), moderate (< 70) or high
// similarity. Empty inputs score 0 on every measure.
//
// The functions in this package are pure. For cancellation, table-size
// budgets, parallel scoring or document extraction use New, which returns a
// configured docsim.Detector.
package docsimilarity

import (
	"github.com/baditaflorin/go_doc_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_doc_similarity/internal/core/cosine"
	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/core/lcs"
	"github.com/baditaflorin/go_doc_similarity/internal/core/levenshtein"
	"github.com/baditaflorin/go_doc_similarity/pkg/docsim"
)

type (
	// TokenSequence is an ordered list of normalized tokens.
	TokenSequence = domain.TokenSequence
	// Scores holds the LCS, Levenshtein and Cosine percentages in that order.
	Scores = domain.Scores
	// Result is the outcome of one comparison.
	Result = domain.Result
	// Level is a similarity bucket.
	Level = domain.Level
)

// Similarity buckets.
const (
	Low      = domain.Low
	Moderate = domain.Moderate
	High     = domain.High
)

var defaultTokenizer = tokenizer.NewDefaultTokenizer()

// Tokenize lowercases text, strips punctuation and digits, splits on
// whitespace and drops French stop words.
func Tokenize(text string) TokenSequence {
	return defaultTokenizer.Tokenize(text)
}

// LCSSimilarity returns the longest-common-subsequence score of a and b.
func LCSSimilarity(a, b TokenSequence) float64 {
	return lcs.Similarity(a, b)
}

// LevenshteinSimilarity returns the token edit-distance score of a and b.
func LevenshteinSimilarity(a, b TokenSequence) float64 {
	return levenshtein.Similarity(a, b)
}

// CosineSimilarity returns the term-frequency cosine score of a and b.
func CosineSimilarity(a, b TokenSequence) float64 {
	return cosine.Similarity(a, b)
}

// Classify returns the label and bucket of the mean of scores.
func Classify(scores Scores) (string, Level) {
	return domain.Classify(scores)
}

// CompareTokens scores two token sequences.
func CompareTokens(a, b TokenSequence) Result {
	var scores Scores
	scores[domain.LCS] = LCSSimilarity(a, b)
	scores[domain.Levenshtein] = LevenshteinSimilarity(a, b)
	scores[domain.Cosine] = CosineSimilarity(a, b)
	return domain.NewResult(scores, len(a), len(b))
}

// Compare tokenizes and scores two texts.
func Compare(textA, textB string) Result {
	return CompareTokens(Tokenize(textA), Tokenize(textB))
}

// New returns a Detector. Unless WithLogger is given, it logs nowhere.
func New(opts ...docsim.Option) (*docsim.Detector, error) {
	quiet, err := createQuietLogger()
	if err != nil {
		return nil, err
	}
	return docsim.New(append([]docsim.Option{docsim.WithLogger(quiet)}, opts...)...)
}
