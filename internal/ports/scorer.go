package ports

import (
	"context"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
)

// Scorer defines the interface for one similarity measure over token sequences.
type Scorer interface {
	Method() domain.Method
	// Compute returns a percentage in [0, 100].
	Compute(ctx context.Context, a, b domain.TokenSequence) (float64, error)
}
