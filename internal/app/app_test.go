package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/baditaflorin/go_doc_similarity/internal/config"
	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Logging.Output = filepath.Join(dir, "docsim.log")
	cfg.History.Path = filepath.Join(dir, "history.db")
	cfg.Engine.PassageMinTokens = 2
	return &cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestCompareTextsRecordsHistory(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	ctx := context.Background()

	report, err := a.CompareTexts(ctx, "a", "Le chat dort au soleil", "b", "le chat dort à l'ombre")
	if err != nil {
		t.Fatalf("CompareTexts() error = %v", err)
	}
	if report.ID == "" {
		t.Fatal("expected history ID on report")
	}
	if len(report.Scores) != 3 {
		t.Fatalf("scores = %v", report.Scores)
	}
	if len(report.Passages) == 0 {
		t.Fatal("expected shared passage to be reported")
	}

	recs, err := a.ListHistory(ctx, 0)
	if err != nil {
		t.Fatalf("ListHistory() error = %v", err)
	}
	if len(recs) != 1 || recs[0].ID != report.ID {
		t.Fatalf("unexpected history: %+v", recs)
	}
	if recs[0].Average != report.Average || recs[0].Level != report.Level {
		t.Fatalf("history diverges from report: %+v vs %+v", recs[0], report)
	}
}

func TestCompareDocumentsErrorsAreNotRecorded(t *testing.T) {
	a := newTestApp(t, testConfig(t))
	ctx := context.Background()

	docA := domain.Document{Name: "a.txt", Data: []byte("chat"), Format: domain.FormatText}
	docB := domain.Document{Name: "b.docx", Data: []byte("broken"), Format: domain.FormatDOCX}
	if _, err := a.CompareDocuments(ctx, docA, docB); err == nil {
		t.Fatal("expected extraction error")
	}

	recs, err := a.ListHistory(ctx, 10)
	if err != nil {
		t.Fatalf("ListHistory() error = %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("failed comparison was recorded: %+v", recs)
	}
}

func TestHistoryDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Enabled = false
	a := newTestApp(t, cfg)

	report, err := a.CompareTexts(context.Background(), "a", "chat", "b", "chat")
	if err != nil {
		t.Fatalf("CompareTexts() error = %v", err)
	}
	if report.ID != "" {
		t.Fatalf("unexpected ID %q with history disabled", report.ID)
	}
	if _, err := a.ListHistory(context.Background(), 5); !errors.Is(err, ErrHistoryDisabled) {
		t.Fatalf("expected ErrHistoryDisabled, got %v", err)
	}
}

func TestNewReportCoverage(t *testing.T) {
	res := domain.NewResult(domain.Scores{100, 100, 100}, 3, 3)
	res.Details["coverage"] = 100.0
	r := NewReport("x", "y", res)
	if r.Coverage != 100 || r.Level != "high" || r.Label != "high similarity" {
		t.Fatalf("unexpected report: %+v", r)
	}
	if r.Scores["LCS"] != 100 {
		t.Fatalf("scores = %v", r.Scores)
	}
}

func TestNewRejectsNilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
