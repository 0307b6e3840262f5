// Package display implements the wallsift display engine: the partition of
// terminal rows into independent spaces, the per-space Finding/Printing
// state machine, the shared bounded history, and the dispatch loop that
// routes input lines onto the terminal.
package display

import (
	"fmt"
	"io"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/wallsift/wallsift/internal/term"
)

// Options configures the engine. It arrives already validated: every
// pattern compiled and HistoryLines non-negative.
type Options struct {
	// Triggers, one per space, define both the top-to-bottom render order
	// and the per-line dispatch order.
	Triggers []*regexp.Regexp

	// RestartOnFind lets a space that is already printing restart from its
	// header whenever its trigger matches again.
	RestartOnFind bool

	// ClearOnRestart blanks a space's whole region before it restarts.
	ClearOnRestart bool

	// HistoryLines is the capacity of the shared history buffer replayed
	// into a space on activation.
	HistoryLines int
}

// Engine owns the ordered space collection and the shared history buffer,
// and issues every terminal write. It is not safe for concurrent use; all
// methods must be called from a single goroutine.
type Engine struct {
	surface term.Surface
	opts    Options
	spaces  []*Space
	history *History
	cols    int
	log     *logrus.Entry
}

// New creates an engine drawing on surface. A nil log entry disables
// logging.
func New(surface term.Surface, opts Options, log *logrus.Entry) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Engine{
		surface: surface,
		opts:    opts,
		history: NewHistory(opts.HistoryLines),
		log:     log,
	}
}

// Start queries the terminal size, clears the screen, partitions the
// usable rows among the spaces, and draws every header once. The bottom
// terminal row is reserved so writing the last region row never scrolls
// the screen.
func (e *Engine) Start() error {
	rows, cols, err := e.surface.Size()
	if err != nil {
		return err
	}
	usable := rows - 1
	if n := len(e.opts.Triggers); n == 0 || usable < n {
		return fmt.Errorf("%d terminal rows cannot hold %d spaces", rows, len(e.opts.Triggers))
	}
	e.cols = cols
	e.spaces = Partition(e.opts.Triggers, usable, cols)

	if err := e.surface.Clear(); err != nil {
		return err
	}
	for _, s := range e.spaces {
		if err := e.surface.MoveTo(s.startRow, 0); err != nil {
			return err
		}
		if err := e.surface.WriteString(s.header); err != nil {
			return err
		}
	}
	e.log.WithFields(logrus.Fields{
		"rows":   rows,
		"cols":   cols,
		"spaces": len(e.spaces),
	}).Debug("display started")
	return e.surface.Flush()
}

// Dispatch routes one input line through every space in order, then
// records the rendered line in the shared history. Errors are terminal
// write failures and are fatal to the run.
func (e *Engine) Dispatch(raw string) error {
	line := RenderLine(raw, e.cols)
	activated := false
	for _, s := range e.spaces {
		// A space that activated earlier in this pass deactivates every
		// space visited after it. Spaces visited before the activation
		// keep the state they entered the line with.
		if activated {
			s.state = Finding
		}
		if (s.state == Finding || e.opts.RestartOnFind) && s.Matches(raw) {
			if err := e.activate(s); err != nil {
				return err
			}
			activated = true
		}
		if s.state == Printing {
			if err := e.printRow(s, line); err != nil {
				return err
			}
		}
	}
	e.history.Push(line)
	return e.surface.Flush()
}

// activate (re)starts a space: optionally blanks its region, redraws the
// header on the first row, and replays the shared history into the rows
// below it.
func (e *Engine) activate(s *Space) error {
	if e.opts.ClearOnRestart {
		for r := 0; r < s.rowCount; r++ {
			if err := e.surface.MoveTo(s.startRow+r, 0); err != nil {
				return err
			}
			if err := e.surface.ClearLine(); err != nil {
				return err
			}
		}
	}
	if err := e.surface.MoveTo(s.startRow, 0); err != nil {
		return err
	}
	if err := e.surface.ClearLine(); err != nil {
		return err
	}
	if err := e.surface.WriteString(s.header); err != nil {
		return err
	}
	s.state = Printing
	s.cursor = 1
	e.log.WithField("pattern", s.Pattern()).Debug("space activated")

	if s.cursor >= s.rowCount {
		// A one-row region holds nothing beyond its header.
		s.state = Finding
		return nil
	}
	for _, h := range e.history.Snapshot() {
		if err := e.printRow(s, h); err != nil {
			return err
		}
		if s.state != Printing {
			break
		}
	}
	return nil
}

// printRow writes one rendered line at the space's next free row and
// advances the row cursor. Reaching the bottom of the region returns the
// space to Finding; lines arriving after that are dropped until the space
// re-triggers.
func (e *Engine) printRow(s *Space, line string) error {
	if s.cursor >= s.rowCount {
		s.state = Finding
		return nil
	}
	if err := e.surface.MoveTo(s.startRow+s.cursor, 0); err != nil {
		return err
	}
	if err := e.surface.ClearLine(); err != nil {
		return err
	}
	if err := e.surface.WriteString(line); err != nil {
		return err
	}
	s.cursor++
	if s.cursor >= s.rowCount {
		s.state = Finding
	}
	return nil
}

// Spaces returns the engine's spaces in render order. The slice is the
// engine's own; callers must not modify it.
func (e *Engine) Spaces() []*Space {
	return e.spaces
}
