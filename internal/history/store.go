// Package history persists comparison outcomes in SQLite so past reports can
// be listed again from the CLI or the HTTP server.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/baditaflorin/go_doc_similarity/internal/core/domain"
)

// ErrNotFound is returned by Get when no record has the requested ID.
var ErrNotFound = errors.New("comparison not found")

// timeLayout sorts lexicographically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record is one stored comparison.
type Record struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	NameA       string        `json:"name_a"`
	NameB       string        `json:"name_b"`
	LengthA     int           `json:"length_a"`
	LengthB     int           `json:"length_b"`
	LCS         float64       `json:"lcs"`
	Levenshtein float64       `json:"levenshtein"`
	Cosine      float64       `json:"cosine"`
	Average     float64       `json:"average"`
	Level       string        `json:"level"`
	Duration    time.Duration `json:"duration_ns"`
}

// NewRecord builds a record from a comparison result. ID and CreatedAt are
// assigned by Save.
func NewRecord(nameA, nameB string, res domain.Result) Record {
	return Record{
		NameA:       nameA,
		NameB:       nameB,
		LengthA:     res.LengthA,
		LengthB:     res.LengthB,
		LCS:         res.Scores.Get(domain.LCS),
		Levenshtein: res.Scores.Get(domain.Levenshtein),
		Cosine:      res.Scores.Get(domain.Cosine),
		Average:     res.Average,
		Level:       res.Level.String(),
		Duration:    res.Duration,
	}
}

// Store manages comparison history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path must be set")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, now: time.Now}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Save inserts rec, assigning an ID and timestamp when missing.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `INSERT INTO comparisons
		(id, created_at, name_a, name_b, length_a, length_b, lcs, levenshtein, cosine, average, level, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.Format(timeLayout), rec.NameA, rec.NameB,
		rec.LengthA, rec.LengthB, rec.LCS, rec.Levenshtein, rec.Cosine, rec.Average,
		rec.Level, int64(rec.Duration),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert comparison: %w", err)
	}
	return rec, nil
}

const selectColumns = `id, created_at, name_a, name_b, length_a, length_b,
	lcs, levenshtein, cosine, average, level, duration_ns`

// List returns up to limit records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM comparisons ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparisons: %w", err)
	}
	return out, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+selectColumns+" FROM comparisons WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		rec        Record
		createdAt  string
		durationNS int64
	)
	err := sc.Scan(&rec.ID, &createdAt, &rec.NameA, &rec.NameB, &rec.LengthA, &rec.LengthB,
		&rec.LCS, &rec.Levenshtein, &rec.Cosine, &rec.Average, &rec.Level, &durationNS)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan comparison: %w", err)
	}
	rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	rec.Duration = time.Duration(durationNS)
	return rec, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
