// Package lcs scores two token sequences by their longest common subsequence.
package lcs

import (
	"context"
	"errors"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/core/table"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
)

// SimilarityConfig holds configuration for the LCS calculator.
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

// Calculator implements the LCS similarity measure.
type Calculator struct {
	config SimilarityConfig
	logger ports.Logger
}

// NewCalculator creates a new LCS similarity calculator.
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

// Method reports domain.LCS.
func (c *Calculator) Method() domain.Method {
	return domain.LCS
}

// Compute returns the LCS similarity of a and b as a percentage. It fails only
// when ctx is done or the table would exceed the configured budget.
func (c *Calculator) Compute(ctx context.Context, a, b domain.TokenSequence) (float64, error) {
	c.logger.Debug("Starting LCS similarity computation",
		"length_a", len(a),
		"length_b", len(b),
	)

	if err := table.CheckBudget(len(a), len(b), c.config.MaxCells); err != nil {
		c.logger.Warn("LCS table over budget", "error", err)
		return 0, err
	}

	n, err := length(ctx, a, b)
	if err != nil {
		c.logger.Error("Computation cancelled", "error", err)
		return 0, err
	}

	score := ratio(n, len(a), len(b))
	c.logger.Debug("Computed LCS similarity",
		"lcs_length", n,
		"score", score,
	)
	return score, nil
}

// Length returns the length of the longest common subsequence of a and b.
func Length(a, b domain.TokenSequence) int {
	n, _ := length(context.Background(), a, b)
	return n
}

// Similarity returns (lcs / max(|a|,|b|)) * 100, or 0 when both are empty.
func Similarity(a, b domain.TokenSequence) float64 {
	return ratio(Length(a, b), len(a), len(b))
}

func ratio(lcsLen, lenA, lenB int) float64 {
	maxLen := max(lenA, lenB)
	if maxLen == 0 {
		return 0
	}
	return float64(lcsLen) / float64(maxLen) * 100
}

// length fills dp[i][j] = LCS of a[:i] and b[:j], checking ctx once per row.
func length(ctx context.Context, a, b domain.TokenSequence) (int, error) {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return 0, ctx.Err()
	}

	dp := table.New(m+1, n+1)
	defer dp.Release()

	for i := 1; i <= m; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		prev, cur := dp.Row(i-1), dp.Row(i)
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
	}

	return dp.At(m, n), nil
}
