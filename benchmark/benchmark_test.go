package benchmark

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/baditaflorin/go_doc_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_doc_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_doc_similarity/internal/core/cosine"
	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/core/lcs"
	"github.com/baditaflorin/go_doc_similarity/internal/core/levenshtein"
	"github.com/baditaflorin/go_doc_similarity/internal/core/overlap"
	"github.com/baditaflorin/go_doc_similarity/internal/warmup"
	"github.com/baditaflorin/go_doc_similarity/pkg/docsim"
	"github.com/baditaflorin/l"
)

// generateText creates a text of roughly size bytes of French prose.
func generateText(size int) string {
	if size <= 0 {
		return ""
	}

	sample := "Le renard brun saute par-dessus le chien paresseux. Dans la vieille maison, la pluie tombe sur les toits gris de la ville en 2024."
	var sb strings.Builder
	sb.Grow(size + len(sample))
	for sb.Len() < size {
		sb.WriteString(sample)
		sb.WriteString(" ")
	}
	return sb.String()[:size]
}

func tokens(n int) domain.TokenSequence {
	return domain.TokenSequence(strings.Fields(warmup.GenerateSampleText(n)))
}

func quietLogger(b *testing.B) l.Logger {
	b.Helper()
	cfg := logger.DefaultConfig(io.Discard)
	cfg.AsyncWrite = false
	cfg.Metrics = false
	log, err := l.NewStandardFactory().CreateLogger(cfg)
	if err != nil {
		b.Fatalf("CreateLogger() error = %v", err)
	}
	b.Cleanup(func() { _ = log.Close() })
	return log
}

// BenchmarkTokenizers compares the default and lookup-table tokenizers.
func BenchmarkTokenizers(b *testing.B) {
	smallText := generateText(100)
	mediumText := generateText(10000)
	largeText := generateText(100000)

	factory := tokenizer.NewTokenizerFactory()

	benchmarks := []struct {
		name    string
		tokType tokenizer.TokenizerType
		input   string
	}{
		{"Default-Small", tokenizer.DefaultTokenizerType, smallText},
		{"Default-Medium", tokenizer.DefaultTokenizerType, mediumText},
		{"Default-Large", tokenizer.DefaultTokenizerType, largeText},

		{"Fast-Small", tokenizer.FastTokenizerType, smallText},
		{"Fast-Medium", tokenizer.FastTokenizerType, mediumText},
		{"Fast-Large", tokenizer.FastTokenizerType, largeText},
	}

	for _, bm := range benchmarks {
		tok := factory.CreateTokenizer(bm.tokType)

		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(bm.input)))
			for i := 0; i < b.N; i++ {
				_ = tok.Tokenize(bm.input)
			}
		})
	}
}

// BenchmarkMeasures runs each pure measure on growing inputs.
func BenchmarkMeasures(b *testing.B) {
	sizes := []struct {
		name string
		n    int
	}{
		{"100", 100},
		{"1000", 1000},
		{"3000", 3000},
	}

	for _, sz := range sizes {
		a := tokens(sz.n)
		other := warmup.GenerateSimilarTokens(a, 0.2)

		b.Run("LCS-"+sz.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = lcs.Similarity(a, other)
			}
		})
		b.Run("Levenshtein-"+sz.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = levenshtein.Similarity(a, other)
			}
		})
		b.Run("Cosine-"+sz.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = cosine.Similarity(a, other)
			}
		})
		b.Run("Passages-"+sz.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = overlap.Passages(a, other, 5)
			}
		})
	}
}

// BenchmarkDetector compares sequential and parallel scoring.
func BenchmarkDetector(b *testing.B) {
	original := generateText(20000)
	similar := strings.Replace(original, "chien", "chat", 20)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	configs := []struct {
		name string
		opts []docsim.Option
	}{
		{"Sequential", nil},
		{"Parallel", []docsim.Option{docsim.WithParallel(true)}},
		{"ParallelFast", []docsim.Option{docsim.WithParallel(true), docsim.WithFastTokenizer()}},
		{"WithPassages", []docsim.Option{docsim.WithPassages(5)}},
	}

	for _, c := range configs {
		b.Run(c.name, func(b *testing.B) {
			opts := append([]docsim.Option{docsim.WithLogger(quietLogger(b))}, c.opts...)
			d, err := docsim.New(opts...)
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}
			defer d.Close()

			b.ReportAllocs()
			b.SetBytes(int64(len(original) + len(similar)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := d.Compare(ctx, original, similar); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
