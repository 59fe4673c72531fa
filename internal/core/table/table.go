// Package table provides the flat row-major arena used by the
// dynamic-programming similarity measures.
package table

import (
	"errors"
	"fmt"
	"math"

	"github.com/baditaflorin/go_doc_similarity/internal/pool"
)

// ErrTooLarge is returned when a comparison would need more table cells than
// the configured budget allows.
var ErrTooLarge = errors.New("dynamic-programming table exceeds cell budget")

var cells = pool.NewIntPool()

// Table is a (rows × cols) matrix of ints stored in one slice.
type Table struct {
	rows, cols int
	buf        *[]int
	data       []int
}

// New returns a zeroed table. Call Release when done with it.
func New(rows, cols int) *Table {
	buf := cells.Get(rows * cols)
	return &Table{rows: rows, cols: cols, buf: buf, data: *buf}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.cols }

// At returns cell (i, j).
func (t *Table) At(i, j int) int {
	return t.data[i*t.cols+j]
}

// Set stores v in cell (i, j).
func (t *Table) Set(i, j, v int) {
	t.data[i*t.cols+j] = v
}

// Row returns row i as a slice aliasing the table.
func (t *Table) Row(i int) []int {
	return t.data[i*t.cols : (i+1)*t.cols]
}

// Release hands the backing storage back to the pool. The table must not be
// used afterwards.
func (t *Table) Release() {
	if t.buf == nil {
		return
	}
	cells.Put(t.buf)
	t.buf = nil
	t.data = nil
}

// Cells returns the number of cells needed to compare sequences of length
// n and m, saturating at math.MaxInt.
func Cells(n, m int) int {
	rows, cols := n+1, m+1
	if rows > math.MaxInt/cols {
		return math.MaxInt
	}
	return rows * cols
}

// CheckBudget returns ErrTooLarge when comparing sequences of length n and m
// would exceed maxCells. A maxCells of zero or less means no limit.
func CheckBudget(n, m, maxCells int) error {
	if maxCells <= 0 {
		return nil
	}
	if need := Cells(n, m); need > maxCells {
		return fmt.Errorf("%w: need %d cells, budget %d", ErrTooLarge, need, maxCells)
	}
	return nil
}
