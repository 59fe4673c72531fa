// Package levenshtein scores two token sequences by their unit-cost edit
// distance, where one edit inserts, deletes or substitutes a whole token.
package levenshtein

import (
	"context"
	"errors"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/core/table"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
)

// SimilarityConfig holds configuration for the Levenshtein calculator.
type SimilarityConfig struct {
	// MaxCells bounds the (|a|+1)×(|b|+1) table; 0 disables the check.
	MaxCells int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() SimilarityConfig {
	return SimilarityConfig{MaxCells: 0}
}

// Validate checks if the configuration is valid.
func (c SimilarityConfig) Validate() error {
	if c.MaxCells < 0 {
		return errors.New("maxCells must not be negative")
	}
	return nil
}

// Calculator implements the Levenshtein similarity measure.
type Calculator struct {
	config SimilarityConfig
	logger ports.Logger
}

// NewCalculator creates a new Levenshtein similarity calculator.
func NewCalculator(config SimilarityConfig, logger ports.Logger) (*Calculator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Calculator{
		config: config,
		logger: logger,
	}, nil
}

// Method reports domain.Levenshtein.
func (c *Calculator) Method() domain.Method {
	return domain.Levenshtein
}

// Compute returns the Levenshtein similarity of a and b as a percentage.
func (c *Calculator) Compute(ctx context.Context, a, b domain.TokenSequence) (float64, error) {
	c.logger.Debug("Starting Levenshtein similarity computation",
		"length_a", len(a),
		"length_b", len(b),
	)

	if err := table.CheckBudget(len(a), len(b), c.config.MaxCells); err != nil {
		c.logger.Warn("Levenshtein table over budget", "error", err)
		return 0, err
	}

	d, err := distance(ctx, a, b)
	if err != nil {
		c.logger.Error("Computation cancelled", "error", err)
		return 0, err
	}

	score := ratio(d, len(a), len(b))
	c.logger.Debug("Computed Levenshtein similarity",
		"distance", d,
		"score", score,
	)
	return score, nil
}

// Distance returns the minimum number of token insertions, deletions and
// substitutions turning a into b.
func Distance(a, b domain.TokenSequence) int {
	d, _ := distance(context.Background(), a, b)
	return d
}

// Similarity returns (1 - distance/max(|a|,|b|)) * 100, or 0 when both are empty.
func Similarity(a, b domain.TokenSequence) float64 {
	return ratio(Distance(a, b), len(a), len(b))
}

func ratio(dist, lenA, lenB int) float64 {
	maxLen := max(lenA, lenB)
	if maxLen == 0 {
		return 0
	}
	score := (1 - float64(dist)/float64(maxLen)) * 100
	return min(max(score, 0), 100)
}

func distance(ctx context.Context, a, b domain.TokenSequence) (int, error) {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return max(m, n), ctx.Err()
	}

	dp := table.New(m+1, n+1)
	defer dp.Release()

	// Transforming to or from the empty prefix costs its length.
	for i := 0; i <= m; i++ {
		dp.Set(i, 0, i)
	}
	for j := 0; j <= n; j++ {
		dp.Set(0, j, j)
	}

	for i := 1; i <= m; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		prev, cur := dp.Row(i-1), dp.Row(i)
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1]
			} else {
				cur[j] = 1 + min(prev[j], cur[j-1], prev[j-1])
			}
		}
	}

	return dp.At(m, n), nil
}
