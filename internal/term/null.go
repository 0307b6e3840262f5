package term

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// NullSurface is an in-memory Surface for tests. Writes render into a rune
// grid the way a terminal would lay them out, and every operation is
// recorded in order so tests can assert both final screen contents and the
// drawing sequence.
type NullSurface struct {
	rows, cols int
	grid       [][]rune
	curRow     int
	curCol     int

	// Ops records each operation as a readable string, in call order.
	Ops []string

	// Flushes counts Flush calls.
	Flushes int

	// FailWith, when set, is returned by every subsequent operation. Used
	// to exercise fatal terminal error paths.
	FailWith error
}

// NewNullSurface creates a blank surface of the given dimensions.
func NewNullSurface(rows, cols int) *NullSurface {
	n := &NullSurface{rows: rows, cols: cols}
	n.grid = make([][]rune, rows)
	for r := range n.grid {
		n.grid[r] = make([]rune, cols)
		n.blankRow(r)
	}
	return n
}

func (n *NullSurface) blankRow(r int) {
	for c := range n.grid[r] {
		n.grid[r][c] = ' '
	}
}

func (n *NullSurface) record(op string) {
	n.Ops = append(n.Ops, op)
}

// Size returns the configured dimensions.
func (n *NullSurface) Size() (rows, cols int, err error) {
	if n.FailWith != nil {
		return 0, 0, n.FailWith
	}
	return n.rows, n.cols, nil
}

// Clear blanks the grid and homes the cursor.
func (n *NullSurface) Clear() error {
	if n.FailWith != nil {
		return n.FailWith
	}
	for r := range n.grid {
		n.blankRow(r)
	}
	n.curRow, n.curCol = 0, 0
	n.record("clear")
	return nil
}

// MoveTo positions the cursor at a zero-based row and column.
func (n *NullSurface) MoveTo(row, col int) error {
	if n.FailWith != nil {
		return n.FailWith
	}
	n.curRow, n.curCol = row, col
	n.record(fmt.Sprintf("moveto %d %d", row, col))
	return nil
}

// ClearLine blanks the row under the cursor.
func (n *NullSurface) ClearLine() error {
	if n.FailWith != nil {
		return n.FailWith
	}
	if n.curRow >= 0 && n.curRow < n.rows {
		n.blankRow(n.curRow)
	}
	n.record(fmt.Sprintf("clearline %d", n.curRow))
	return nil
}

// WriteString lays s out into the grid from the cursor. Wide runes occupy
// two cells; a newline moves the cursor to column zero of the next row.
func (n *NullSurface) WriteString(s string) error {
	if n.FailWith != nil {
		return n.FailWith
	}
	for _, r := range s {
		if r == '\n' {
			n.curRow++
			n.curCol = 0
			continue
		}
		w := runewidth.RuneWidth(r)
		if n.curRow >= 0 && n.curRow < n.rows && n.curCol >= 0 && n.curCol < n.cols {
			n.grid[n.curRow][n.curCol] = r
		}
		n.curCol += w
	}
	n.record("write " + strings.TrimSuffix(s, "\n"))
	return nil
}

// Flush records the flush.
func (n *NullSurface) Flush() error {
	if n.FailWith != nil {
		return n.FailWith
	}
	n.Flushes++
	return nil
}

// Row returns the text of grid row r with trailing blanks removed.
func (n *NullSurface) Row(r int) string {
	if r < 0 || r >= n.rows {
		return ""
	}
	return strings.TrimRight(string(n.grid[r]), " ")
}

// Cursor returns the cursor's zero-based position.
func (n *NullSurface) Cursor() (row, col int) {
	return n.curRow, n.curCol
}
