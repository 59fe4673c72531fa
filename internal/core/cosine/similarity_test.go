package cosine

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/baditaflorin/go_doc_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
)

func seq(tokens ...string) domain.TokenSequence {
	return domain.TokenSequence(tokens)
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.TokenSequence
		want float64
	}{
		{name: "both empty", a: seq(), b: seq(), want: 0},
		{name: "one empty", a: seq("a"), b: seq(), want: 0},
		{name: "identical", a: seq("the", "cat", "sat"), b: seq("the", "cat", "sat"), want: 100},
		{name: "order ignored", a: seq("the", "cat", "sat"), b: seq("sat", "the", "cat"), want: 100},
		{name: "disjoint", a: seq("chat", "noir"), b: seq("chien", "blanc"), want: 0},
		// vocab {a,b,c,x}: (1,1,1,0)·(1,0,1,1) = 2, norms √3 each.
		{name: "two shared of three", a: seq("a", "b", "c"), b: seq("a", "x", "c"), want: 200.0 / 3},
		// (2,1)·(1,0) = 2, norms √5 and 1.
		{name: "repeated terms", a: seq("a", "a", "b"), b: seq("a"), want: 200 / math.Sqrt(5)},
		{name: "proportional counts", a: seq("a", "b"), b: seq("a", "a", "b", "b"), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVocabularyAndVector(t *testing.T) {
	a, b := seq("a", "b", "c"), seq("a", "x", "c")
	vocab := Vocabulary(a, b)
	if len(vocab) != 4 {
		t.Fatalf("len(vocab) = %d, want 4", len(vocab))
	}

	va, vb := Vector(vocab, a), Vector(vocab, b)
	want := map[string][2]int{"a": {1, 1}, "b": {1, 0}, "c": {1, 1}, "x": {0, 1}}
	for tok, counts := range want {
		idx := vocab[tok]
		if va[idx] != counts[0] || vb[idx] != counts[1] {
			t.Errorf("counts for %q = (%d, %d), want %v", tok, va[idx], vb[idx], counts)
		}
	}
}

func TestSimilarityProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	vocab := []string{"a", "b", "c", "d"}
	randomSeq := func() domain.TokenSequence {
		n := rng.Intn(10)
		s := make(domain.TokenSequence, n)
		for i := range s {
			s[i] = vocab[rng.Intn(len(vocab))]
		}
		return s
	}

	for i := 0; i < 300; i++ {
		a, b := randomSeq(), randomSeq()
		ab, ba := Similarity(a, b), Similarity(b, a)
		if ab < 0 || ab > 100 {
			t.Fatalf("out of range: %v", ab)
		}
		if ab != ba {
			t.Fatalf("not symmetric for %v, %v: %v vs %v", a, b, ab, ba)
		}
		if len(a) > 0 && Similarity(a, a) != 100 {
			t.Fatalf("Similarity(a, a) = %v for %v", Similarity(a, a), a)
		}
	}
}

func TestCalculator(t *testing.T) {
	log, err := logger.NewDiscardLogger()
	if err != nil {
		t.Fatalf("NewDiscardLogger() error = %v", err)
	}
	defer log.Close()

	calc, err := NewCalculator(log)
	if err != nil {
		t.Fatalf("NewCalculator() error = %v", err)
	}
	if calc.Method() != domain.Cosine {
		t.Errorf("Method() = %v", calc.Method())
	}

	got, err := calc.Compute(context.Background(), seq("x", "y"), seq("y", "x"))
	if err != nil || got != 100 {
		t.Errorf("Compute() = %v, %v", got, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := calc.Compute(ctx, seq("x"), seq("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	if _, err := NewCalculator(nil); err == nil {
		t.Error("expected error for nil logger")
	}
}
