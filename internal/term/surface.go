// Package term provides the terminal surface the display engine draws on:
// absolute cursor positioning, line and screen clearing, and raw text
// writes.
package term

// Surface is the display engine's view of the terminal. All positioning is
// absolute (row and column from the terminal origin), never relative, so
// output interleaved from other processes sharing the terminal cannot
// desynchronize the engine's notion of where it is drawing.
type Surface interface {
	// Size returns the terminal's current row and column counts.
	Size() (rows, cols int, err error)

	// Clear erases the whole screen.
	Clear() error

	// MoveTo positions the cursor at the given zero-based row and column.
	MoveTo(row, col int) error

	// ClearLine erases the row under the cursor without moving it.
	ClearLine() error

	// WriteString writes s at the cursor. A newline moves the cursor to
	// column zero of the following row.
	WriteString(s string) error

	// Flush forces any buffered writes out to the terminal.
	Flush() error
}
