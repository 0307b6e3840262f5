package term

import (
	"bufio"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	xterm "golang.org/x/term"
)

// TTY is the production Surface: escape-sequence writes to a real terminal
// through termenv, buffered so a full input line's worth of drawing reaches
// the terminal in one write.
type TTY struct {
	f   *os.File
	w   *bufio.Writer
	out *termenv.Output
}

// NewTTY wraps an open terminal file, normally os.Stdout.
func NewTTY(f *os.File) *TTY {
	w := bufio.NewWriter(f)
	return &TTY{
		f:   f,
		w:   w,
		out: termenv.NewOutput(w),
	}
}

// Size queries the terminal's dimensions.
func (t *TTY) Size() (rows, cols int, err error) {
	cols, rows, err = xterm.GetSize(int(t.f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("querying terminal size: %w", err)
	}
	return rows, cols, nil
}

// Clear erases the screen and homes the cursor.
func (t *TTY) Clear() error {
	t.out.ClearScreen()
	return nil
}

// MoveTo positions the cursor absolutely. The zero-based coordinates used
// everywhere above this layer are translated to the terminal's one-based
// addressing here.
func (t *TTY) MoveTo(row, col int) error {
	t.out.MoveCursor(row+1, col+1)
	return nil
}

// ClearLine erases the row under the cursor.
func (t *TTY) ClearLine() error {
	t.out.ClearLine()
	return nil
}

// WriteString writes s at the cursor.
func (t *TTY) WriteString(s string) error {
	_, err := t.w.WriteString(s)
	return err
}

// Flush drains the write buffer to the terminal. Any write error swallowed
// by the buffer since the last flush surfaces here.
func (t *TTY) Flush() error {
	if err := t.w.Flush(); err != nil {
		return fmt.Errorf("writing to terminal: %w", err)
	}
	return nil
}

// HideCursor hides the hardware cursor so it does not hop between regions
// while the engine draws.
func (t *TTY) HideCursor() {
	t.out.HideCursor()
	t.w.Flush()
}

// ShowCursor restores the hardware cursor.
func (t *TTY) ShowCursor() {
	t.out.ShowCursor()
	t.w.Flush()
}

// Park moves the cursor to the bottom terminal row, the one the engine
// reserves, so the shell prompt lands below the regions after exit.
func (t *TTY) Park() {
	if rows, _, err := t.Size(); err == nil {
		t.out.MoveCursor(rows, 1)
	}
	t.w.Flush()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}
