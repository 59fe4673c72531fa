// Package docsim compares two documents with three surface-level measures
// (LCS, Levenshtein over tokens, term-frequency cosine) and classifies the
// mean score as low, moderate or high similarity.
package docsim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_doc_similarity/internal/adapters/extract"
	"github.com/baditaflorin/go_doc_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_doc_similarity/internal/adapters/stream"
	"github.com/baditaflorin/go_doc_similarity/internal/adapters/tokenizer"
	"github.com/baditaflorin/go_doc_similarity/internal/core/cosine"
	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/core/lcs"
	"github.com/baditaflorin/go_doc_similarity/internal/core/levenshtein"
	"github.com/baditaflorin/go_doc_similarity/internal/core/overlap"
	"github.com/baditaflorin/go_doc_similarity/internal/core/table"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
	"github.com/baditaflorin/go_doc_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// Re-exported so callers can match errors without importing internal packages.
var (
	ErrTableTooLarge     = table.ErrTooLarge
	ErrUnsupportedFormat = domain.ErrUnsupportedFormat
	ErrDecode            = extract.ErrDecode
	ErrDocumentTooLarge  = extract.ErrTooLarge
)

// Detector compares documents. It is safe for concurrent use.
type Detector struct {
	tokenizer  ports.Tokenizer
	scorers    []ports.Scorer
	extractor  *extract.Extractor
	streamer   *stream.Processor
	logger     ports.Logger
	ownsLogger bool
	parallel   bool
	passageMin int

	warmMu sync.Mutex
	warmed bool
}

// Option defines a functional option for configuring a Detector.
type Option func(*detectorConfig)

type detectorConfig struct {
	Logger           ports.Logger
	Tokenizer        ports.Tokenizer
	Parallel         bool
	MaxTableCells    int
	PassageMinTokens int
	MaxDocumentBytes int
	WarmUp           bool
	WarmUpConfig     warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *detectorConfig) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithTokenizer sets a custom tokenizer.
func WithTokenizer(t ports.Tokenizer) Option {
	return func(cfg *detectorConfig) {
		cfg.Tokenizer = t
	}
}

// WithFastTokenizer selects the lookup-table tokenizer.
func WithFastTokenizer() Option {
	return func(cfg *detectorConfig) {
		cfg.Tokenizer = tokenizer.NewTokenizerFactory().CreateTokenizer(tokenizer.FastTokenizerType)
	}
}

// WithParallel runs the three measures concurrently.
func WithParallel(enable bool) Option {
	return func(cfg *detectorConfig) {
		cfg.Parallel = enable
	}
}

// WithMaxTableCells bounds the dynamic-programming tables; 0 means unlimited.
func WithMaxTableCells(n int) Option {
	return func(cfg *detectorConfig) {
		cfg.MaxTableCells = n
	}
}

// WithPassages reports shared passages of at least minTokens tokens;
// 0 disables the report.
func WithPassages(minTokens int) Option {
	return func(cfg *detectorConfig) {
		cfg.PassageMinTokens = minTokens
	}
}

// WithMaxDocumentBytes bounds the size of documents given to CompareDocuments.
func WithMaxDocumentBytes(n int) Option {
	return func(cfg *detectorConfig) {
		cfg.MaxDocumentBytes = n
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *detectorConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) Option {
	return func(cfg *detectorConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Detector.
func New(opts ...Option) (*Detector, error) {
	config := &detectorConfig{
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if config.MaxTableCells < 0 {
		return nil, errors.New("maxTableCells must not be negative")
	}
	if config.PassageMinTokens < 0 {
		return nil, errors.New("passage minimum must not be negative")
	}

	ownsLogger := false
	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
		ownsLogger = true
	}

	if config.Tokenizer == nil {
		config.Tokenizer = tokenizer.NewDefaultTokenizer()
	}

	lcsCalc, err := lcs.NewCalculator(lcs.SimilarityConfig{MaxCells: config.MaxTableCells}, config.Logger)
	if err != nil {
		return nil, err
	}
	levCalc, err := levenshtein.NewCalculator(levenshtein.SimilarityConfig{MaxCells: config.MaxTableCells}, config.Logger)
	if err != nil {
		return nil, err
	}
	cosCalc, err := cosine.NewCalculator(config.Logger)
	if err != nil {
		return nil, err
	}

	d := &Detector{
		tokenizer:  config.Tokenizer,
		scorers:    []ports.Scorer{lcsCalc, levCalc, cosCalc},
		extractor:  extract.New(config.Logger, extract.Config{MaxBytes: config.MaxDocumentBytes}),
		streamer:   stream.NewProcessor(config.Logger, config.Tokenizer, stream.Config{}),
		logger:     config.Logger,
		ownsLogger: ownsLogger,
		parallel:   config.Parallel,
		passageMin: config.PassageMinTokens,
	}

	if config.WarmUp {
		d.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return d, nil
}

// Tokenize exposes the detector's tokenizer.
func (d *Detector) Tokenize(text string) domain.TokenSequence {
	return d.tokenizer.Tokenize(text)
}

// Compare tokenizes both texts and compares them.
func (d *Detector) Compare(ctx context.Context, textA, textB string) (domain.Result, error) {
	return d.CompareTokens(ctx, d.tokenizer.Tokenize(textA), d.tokenizer.Tokenize(textB))
}

// CompareReaders tokenizes both readers as streams and compares them.
func (d *Detector) CompareReaders(ctx context.Context, ra, rb io.Reader) (domain.Result, error) {
	resA, err := d.streamer.Tokenize(ctx, ra)
	if err != nil {
		return domain.Result{}, fmt.Errorf("tokenize first document: %w", err)
	}
	resB, err := d.streamer.Tokenize(ctx, rb)
	if err != nil {
		return domain.Result{}, fmt.Errorf("tokenize second document: %w", err)
	}

	res, err := d.CompareTokens(ctx, resA.Tokens, resB.Tokens)
	if err != nil {
		return res, err
	}
	res.Details["bytes_processed"] = resA.BytesProcessed + resB.BytesProcessed
	return res, nil
}

// CompareDocuments extracts the text of both documents and compares it.
// Extraction failures are returned as is; a document that cannot be decoded
// is never scored as empty.
func (d *Detector) CompareDocuments(ctx context.Context, docA, docB domain.Document) (domain.Result, error) {
	textA, err := d.extractor.ExtractDocument(ctx, docA)
	if err != nil {
		return domain.Result{}, err
	}
	textB, err := d.extractor.ExtractDocument(ctx, docB)
	if err != nil {
		return domain.Result{}, err
	}
	return d.Compare(ctx, textA, textB)
}

// CompareTokens scores two token sequences with every measure.
func (d *Detector) CompareTokens(ctx context.Context, a, b domain.TokenSequence) (domain.Result, error) {
	startTime := time.Now()

	scores, err := d.score(ctx, a, b)
	if err != nil {
		d.logger.Error("Comparison failed", "error", err)
		return domain.Result{}, err
	}

	res := domain.NewResult(scores, len(a), len(b))
	if d.passageMin > 0 {
		passages, err := overlap.Passages(a, b, d.passageMin)
		if err != nil {
			return domain.Result{}, err
		}
		res.Passages = passages
		res.Details["coverage"] = overlap.Coverage(passages, len(a))
	}
	res.Details["table_cells"] = table.Cells(len(a), len(b))
	res.Details["parallel"] = d.parallel
	res.Duration = time.Since(startTime)

	d.logger.Info("Comparison finished",
		"length_a", res.LengthA,
		"length_b", res.LengthB,
		"lcs", scores.Get(domain.LCS),
		"levenshtein", scores.Get(domain.Levenshtein),
		"cosine", scores.Get(domain.Cosine),
		"average", res.Average,
		"level", res.Level.String(),
		"duration", res.Duration,
	)
	return res, nil
}

func (d *Detector) score(ctx context.Context, a, b domain.TokenSequence) (domain.Scores, error) {
	var scores domain.Scores

	if !d.parallel {
		for _, s := range d.scorers {
			v, err := s.Compute(ctx, a, b)
			if err != nil {
				return scores, fmt.Errorf("%s: %w", s.Method(), err)
			}
			scores[s.Method()] = v
		}
		return scores, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range d.scorers {
		g.Go(func() error {
			v, err := s.Compute(gctx, a, b)
			if err != nil {
				return fmt.Errorf("%s: %w", s.Method(), err)
			}
			scores[s.Method()] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Scores{}, err
	}
	return scores, nil
}

// WarmUp performs system warm-up to optimize performance.
func (d *Detector) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	d.warmMu.Lock()
	defer d.warmMu.Unlock()
	if d.warmed {
		d.logger.Debug("System already warmed up, skipping")
		return
	}

	mgr := warmup.NewManager(d.logger, config)
	mgr.RegisterTokenizer(d.tokenizer)
	for _, s := range d.scorers {
		mgr.RegisterScorer(s)
	}
	mgr.WarmUp(ctx)
	d.warmed = true
}

// Close flushes the logger if the detector created it.
func (d *Detector) Close() error {
	if d.ownsLogger {
		return d.logger.Close()
	}
	return nil
}
