package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size in words
	SampleWords int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		SampleWords: 200,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger     ports.Logger
	scorers    []ports.Scorer
	tokenizers []ports.Tokenizer
	config     WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterScorer adds a scorer to be warmed up
func (wm *Manager) RegisterScorer(s ports.Scorer) {
	wm.scorers = append(wm.scorers, s)
}

// RegisterTokenizer adds a tokenizer to be warmed up
func (wm *Manager) RegisterTokenizer(t ports.Tokenizer) {
	wm.tokenizers = append(wm.tokenizers, t)
}

// Stats reports how much work a warmup run did.
type Stats struct {
	Tokenizations int64
	Comparisons   int64
	Duration      time.Duration
}

// WarmUp runs the warmup process for all registered components
func (wm *Manager) WarmUp(ctx context.Context) Stats {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.scorers)+len(wm.tokenizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	var stats Stats
	stats.Tokenizations = wm.run(warmupCtx, len(wm.tokenizers) > 0, wm.warmUpTokenizers)
	stats.Comparisons = wm.run(warmupCtx, len(wm.scorers) > 0, wm.warmUpScorers())

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	stats.Duration = time.Since(startTime)
	wm.logger.Info("System warmup completed",
		"duration", stats.Duration,
		"tokenizations", stats.Tokenizations,
		"comparisons", stats.Comparisons,
	)
	return stats
}

// run executes step Concurrency×Iterations times and returns the number of
// completed steps.
func (wm *Manager) run(ctx context.Context, enabled bool, step func(ctx context.Context, j int) int) int64 {
	if !enabled {
		return 0
	}

	concurrency := max(wm.config.Concurrency, 1)
	counts := make([]int64, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(routineID int) {
			defer wg.Done()
			for j := 0; j < wm.config.Iterations; j++ {
				if ctx.Err() != nil {
					return
				}
				counts[routineID] += int64(step(ctx, j))
			}
		}(i)
	}
	wg.Wait()

	var total int64
	for _, c := range counts {
		total += c
	}
	return total
}

func (wm *Manager) warmUpTokenizers(_ context.Context, _ int) int {
	sample := GenerateSampleText(wm.config.SampleWords)
	for _, t := range wm.tokenizers {
		_ = t.Tokenize(sample)
	}
	return len(wm.tokenizers)
}

func (wm *Manager) warmUpScorers() func(ctx context.Context, j int) int {
	original := domain.TokenSequence(strings.Fields(GenerateSampleText(wm.config.SampleWords)))
	similar := GenerateSimilarTokens(original, 0.1)   // 10% difference
	different := GenerateSimilarTokens(original, 0.5) // 50% difference

	return func(ctx context.Context, j int) int {
		done := 0
		for _, s := range wm.scorers {
			var err error
			// Alternate between different similarity levels
			switch j % 3 {
			case 0:
				_, err = s.Compute(ctx, original, original)
			case 1:
				_, err = s.Compute(ctx, original, similar)
			default:
				_, err = s.Compute(ctx, original, different)
			}
			if err == nil {
				done++
			}
		}
		return done
	}
}

// sampleWords is French prose with a few stop words mixed in.
var sampleWords = []string{
	"le", "renard", "brun", "saute", "par", "dessus", "chien", "paresseux",
	"dans", "jardin", "une", "maison", "ancienne", "garde", "mémoire",
	"des", "saisons", "pluie", "tombe", "sur", "toits", "gris", "ville",
	"et", "enfants", "courent", "vers", "école",
}

// GenerateSampleText returns n words of sample text.
func GenerateSampleText(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(sampleWords[i%len(sampleWords)])
	}
	return sb.String()
}

// GenerateSimilarTokens copies original and replaces the leading diffRatio
// share of its tokens.
func GenerateSimilarTokens(original domain.TokenSequence, diffRatio float64) domain.TokenSequence {
	replacements := []string{
		"remplacé", "modifié", "changé", "altéré", "nouveau",
		"différent", "unique", "frais", "inédit", "autre",
	}

	out := make(domain.TokenSequence, len(original))
	copy(out, original)

	changeCount := int(float64(len(original)) * diffRatio)
	for i := 0; i < changeCount && i < len(out); i++ {
		out[i] = replacements[i%len(replacements)]
	}
	return out
}
