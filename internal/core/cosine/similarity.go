// Package cosine scores two token sequences by the cosine of the angle between
// their raw term-frequency vectors. Token order is ignored.
package cosine

import (
	"context"
	"errors"
	"math"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
)

// Calculator implements the cosine similarity measure.
type Calculator struct {
	logger ports.Logger
}

// NewCalculator creates a new cosine similarity calculator.
func NewCalculator(logger ports.Logger) (*Calculator, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Calculator{logger: logger}, nil
}

// Method reports domain.Cosine.
func (c *Calculator) Method() domain.Method {
	return domain.Cosine
}

// Compute returns the cosine similarity of a and b as a percentage.
func (c *Calculator) Compute(ctx context.Context, a, b domain.TokenSequence) (float64, error) {
	if err := ctx.Err(); err != nil {
		c.logger.Error("Computation cancelled", "error", err)
		return 0, err
	}

	vocab := Vocabulary(a, b)
	score := similarity(vocab, a, b)
	c.logger.Debug("Computed cosine similarity",
		"length_a", len(a),
		"length_b", len(b),
		"vocabulary", len(vocab),
		"score", score,
	)
	return score, nil
}

// Vocabulary returns the union of tokens of a and b mapped to a vector index,
// assigned in order of first appearance.
func Vocabulary(a, b domain.TokenSequence) map[string]int {
	vocab := make(map[string]int, len(a)+len(b))
	for _, s := range [...]domain.TokenSequence{a, b} {
		for _, tok := range s {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
			}
		}
	}
	return vocab
}

// Vector returns the term-frequency vector of s over vocab.
func Vector(vocab map[string]int, s domain.TokenSequence) []int {
	v := make([]int, len(vocab))
	for _, tok := range s {
		if idx, ok := vocab[tok]; ok {
			v[idx]++
		}
	}
	return v
}

// Similarity returns dot(a,b) / (‖a‖·‖b‖) * 100 over raw term counts, or 0
// when either vector is zero.
func Similarity(a, b domain.TokenSequence) float64 {
	return similarity(Vocabulary(a, b), a, b)
}

func similarity(vocab map[string]int, a, b domain.TokenSequence) float64 {
	va, vb := Vector(vocab, a), Vector(vocab, b)

	var dot, sa, sb int
	for i := range va {
		dot += va[i] * vb[i]
		sa += va[i] * va[i]
		sb += vb[i] * vb[i]
	}
	if sa == 0 || sb == 0 {
		return 0
	}

	// One square root of the product keeps identical inputs at exactly 100.
	denom := math.Sqrt(float64(sa) * float64(sb))
	score := float64(dot) / denom * 100
	return min(max(score, 0), 100)
}
