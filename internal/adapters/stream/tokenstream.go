package stream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
)

const (
	// DefaultMaxWordSize is the longest whitespace-delimited word accepted.
	DefaultMaxWordSize = 1024 * 1024 // 1MB

	// ContextCheckFrequency defines how often to check for context cancellation
	ContextCheckFrequency = 5000 // words
)

// ErrWordTooLong is returned when a single word exceeds the configured size.
var ErrWordTooLong = errors.New("word exceeds maximum size")

// Result holds the tokens read from a stream plus processing statistics.
type Result struct {
	Tokens         domain.TokenSequence
	BytesProcessed int64
	ProcessingTime time.Duration
}

// Config defines configuration for stream tokenization.
type Config struct {
	MaxWordSize int
}

// Processor tokenizes an io.Reader word by word without holding the whole
// text in memory. It yields the same tokens as tokenizing the full text.
type Processor struct {
	logger    ports.Logger
	tokenizer ports.Tokenizer
	config    Config
}

// NewProcessor creates a new stream processor.
func NewProcessor(logger ports.Logger, tokenizer ports.Tokenizer, config Config) *Processor {
	if config.MaxWordSize <= 0 {
		config.MaxWordSize = DefaultMaxWordSize
	}
	return &Processor{
		logger:    logger,
		tokenizer: tokenizer,
		config:    config,
	}
}

// countingReader tracks how many bytes were pulled from the source.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Tokenize reads reader to EOF and returns its token sequence.
func (p *Processor) Tokenize(ctx context.Context, reader io.Reader) (Result, error) {
	startTime := time.Now()
	counter := &countingReader{r: reader}

	scanner := bufio.NewScanner(counter)
	scanner.Buffer(make([]byte, 0, 64*1024), p.config.MaxWordSize)
	scanner.Split(bufio.ScanWords)

	tokens := make(domain.TokenSequence, 0, 256)
	words := 0
	for scanner.Scan() {
		words++
		if words%ContextCheckFrequency == 0 {
			if err := ctx.Err(); err != nil {
				p.logger.Warn("Tokenization cancelled by context", "error", err)
				return Result{}, err
			}
		}
		// A word never splits further; at most one token comes back.
		tokens = append(tokens, p.tokenizer.Tokenize(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = ErrWordTooLong
		}
		p.logger.Error("Stream tokenization failed", "error", err)
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{
		Tokens:         tokens,
		BytesProcessed: counter.n,
		ProcessingTime: time.Since(startTime),
	}
	p.logger.Debug("Tokenized stream",
		"words", words,
		"tokens", len(tokens),
		"bytes", res.BytesProcessed,
		"duration", res.ProcessingTime,
	)
	return res, nil
}
