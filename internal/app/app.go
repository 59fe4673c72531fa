// Package app wires configuration, logging, the similarity detector and the
// history store together for the docsim binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/baditaflorin/go_doc_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_doc_similarity/internal/config"
	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
	"github.com/baditaflorin/go_doc_similarity/internal/history"
	"github.com/baditaflorin/go_doc_similarity/internal/ports"
	"github.com/baditaflorin/go_doc_similarity/pkg/docsim"
	"github.com/baditaflorin/l"
)

// Report is the presentation form of one comparison.
type Report struct {
	ID         string             `json:"id,omitempty"`
	NameA      string             `json:"name_a"`
	NameB      string             `json:"name_b"`
	Scores     map[string]float64 `json:"scores"`
	Average    float64            `json:"average"`
	Level      string             `json:"level"`
	Label      string             `json:"label"`
	LengthA    int                `json:"length_a"`
	LengthB    int                `json:"length_b"`
	Passages   []domain.Passage   `json:"passages,omitempty"`
	Coverage   float64            `json:"coverage,omitempty"`
	DurationMS float64            `json:"duration_ms"`
}

// NewReport converts a detector result.
func NewReport(nameA, nameB string, res domain.Result) Report {
	r := Report{
		NameA:      nameA,
		NameB:      nameB,
		Scores:     res.Scores.Map(),
		Average:    res.Average,
		Level:      res.Level.String(),
		Label:      res.Label,
		LengthA:    res.LengthA,
		LengthB:    res.LengthB,
		Passages:   res.Passages,
		DurationMS: float64(res.Duration) / float64(time.Millisecond),
	}
	if cov, ok := res.Details["coverage"].(float64); ok {
		r.Coverage = cov
	}
	return r
}

// App holds the long-lived components shared by a binary.
type App struct {
	Config   *config.Config
	Logger   ports.Logger
	Detector *docsim.Detector
	History  *history.Store

	base    l.Logger
	logFile io.Closer
}

// DetectorOptions translates the engine section into detector options.
func DetectorOptions(e config.Engine) []docsim.Option {
	opts := []docsim.Option{
		docsim.WithParallel(e.Parallel),
		docsim.WithMaxTableCells(e.MaxTableCells),
		docsim.WithPassages(e.PassageMinTokens),
		docsim.WithMaxDocumentBytes(e.MaxDocumentBytes),
		docsim.WithWarmUp(e.WarmUp),
	}
	if e.FastTokenizer {
		opts = append(opts, docsim.WithFastTokenizer())
	}
	return opts
}

// New builds an App from cfg. extra options are applied after the ones
// derived from the configuration.
func New(cfg *config.Config, extra ...docsim.Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	a := &App{Config: cfg}
	if err := a.openLogger(cfg.Logging); err != nil {
		return nil, err
	}

	opts := append([]docsim.Option{docsim.WithLogger(a.base)}, DetectorOptions(cfg.Engine)...)
	opts = append(opts, extra...)
	det, err := docsim.New(opts...)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("create detector: %w", err)
	}
	a.Detector = det

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("open history: %w", err)
		}
		a.History = store
	}

	return a, nil
}

func (a *App) openLogger(cfg config.Logging) error {
	var out io.Writer
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		out = f
		a.logFile = f
	}

	lc := logger.DefaultConfig(out)
	lc.JsonFormat = cfg.Format == "json"
	lc.AddSource = cfg.AddSource
	base, err := l.NewStandardFactory().CreateLogger(lc)
	if err != nil {
		if a.logFile != nil {
			_ = a.logFile.Close()
		}
		return fmt.Errorf("create logger: %w", err)
	}
	a.base = base
	a.Logger = logger.FromExisting(base)
	return nil
}

// CompareDocuments scores two documents and records the outcome.
func (a *App) CompareDocuments(ctx context.Context, docA, docB domain.Document) (Report, error) {
	res, err := a.Detector.CompareDocuments(ctx, docA, docB)
	if err != nil {
		return Report{}, err
	}
	return a.record(ctx, docA.Name, docB.Name, res), nil
}

// CompareTexts scores two raw texts and records the outcome.
func (a *App) CompareTexts(ctx context.Context, nameA, textA, nameB, textB string) (Report, error) {
	res, err := a.Detector.Compare(ctx, textA, textB)
	if err != nil {
		return Report{}, err
	}
	return a.record(ctx, nameA, nameB, res), nil
}

// record stores res in the history when enabled. A storage failure is logged
// and does not fail the comparison.
func (a *App) record(ctx context.Context, nameA, nameB string, res domain.Result) Report {
	report := NewReport(nameA, nameB, res)
	if a.History == nil {
		return report
	}
	saved, err := a.History.Save(ctx, history.NewRecord(nameA, nameB, res))
	if err != nil {
		a.Logger.Warn("Failed to record comparison", "error", err)
		return report
	}
	report.ID = saved.ID
	return report
}

// ErrHistoryDisabled is returned by ListHistory when no store is configured.
var ErrHistoryDisabled = errors.New("history is disabled")

// ListHistory returns up to limit stored comparisons; limit <= 0 uses the
// configured default.
func (a *App) ListHistory(ctx context.Context, limit int) ([]history.Record, error) {
	if a.History == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = a.Config.History.Limit
	}
	return a.History.List(ctx, limit)
}

// Close releases every component in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	if a.History != nil {
		errs = append(errs, a.History.Close())
	}
	if a.Detector != nil {
		errs = append(errs, a.Detector.Close())
	}
	if a.Logger != nil {
		errs = append(errs, a.Logger.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}
