// Package extract decodes the text of plain-text, PDF and DOCX documents.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
)

// ErrDecode is returned when a document's bytes cannot be turned into text.
var ErrDecode = errors.New("document decode error")

// ErrTooLarge is returned for documents above the configured size limit.
var ErrTooLarge = errors.New("document exceeds size limit")

// DefaultMaxBytes is the default upper bound on a document's size.
const DefaultMaxBytes = 50 * 1024 * 1024 // 50MB

// Config holds extraction limits.
type Config struct {
	MaxBytes int
}

// Extractor dispatches on the document format.
type Extractor struct {
	logger ports.Logger
	config Config
}

var _ ports.Extractor = (*Extractor)(nil)

// New creates an extractor. A zero MaxBytes selects DefaultMaxBytes.
func New(logger ports.Logger, config Config) *Extractor {
	if config.MaxBytes <= 0 {
		config.MaxBytes = DefaultMaxBytes
	}
	return &Extractor{logger: logger, config: config}
}

// Extract returns the text held in data. Failures wrap ErrDecode,
// ErrTooLarge or domain.ErrUnsupportedFormat; an undecodable document is
// never reported as empty text.
func (e *Extractor) Extract(ctx context.Context, data []byte, format domain.Format) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) > e.config.MaxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), e.config.MaxBytes)
	}

	var (
		text string
		err  error
	)
	switch format {
	case domain.FormatText:
		text, err = decodeText(data)
	case domain.FormatPDF:
		text, err = extractPDF(data)
	case domain.FormatDOCX:
		text, err = extractDOCX(data)
	default:
		err = fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		e.logger.Warn("Text extraction failed",
			"format", format.String(),
			"bytes", len(data),
			"error", err,
		)
		return "", err
	}

	text = strings.TrimSpace(text)
	e.logger.Debug("Extracted document text",
		"format", format.String(),
		"bytes", len(data),
		"chars", len(text),
	)
	return text, nil
}

// ExtractDocument is Extract applied to a domain.Document.
func (e *Extractor) ExtractDocument(ctx context.Context, doc domain.Document) (string, error) {
	text, err := e.Extract(ctx, doc.Data, doc.Format)
	if err != nil {
		return "", fmt.Errorf("%s: %w", doc.Name, err)
	}
	return text, nil
}
