package display

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// State is a space's phase in the Finding/Printing cycle.
type State int

const (
	// Finding means the space is idle, waiting for its trigger to match.
	Finding State = iota
	// Printing means the space is actively receiving lines.
	Printing
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Finding:
		return "finding"
	case Printing:
		return "printing"
	default:
		return "unknown"
	}
}

// Space is one non-overlapping terminal region bound to a single trigger
// pattern. Region geometry, the trigger, and the header are fixed at
// startup; only the state and the row cursor change afterwards, and only
// the engine changes them.
type Space struct {
	startRow int
	rowCount int
	trigger  *regexp.Regexp
	header   string
	state    State
	cursor   int // rows written since the last activation
}

// Matches reports whether the space's trigger matches anywhere in line.
func (s *Space) Matches(line string) bool {
	return s.trigger.MatchString(line)
}

// State returns the space's current phase.
func (s *Space) State() State {
	return s.state
}

// Region returns the space's first row and its row count.
func (s *Space) Region() (startRow, rowCount int) {
	return s.startRow, s.rowCount
}

// Pattern returns the source text of the space's trigger.
func (s *Space) Pattern() string {
	return s.trigger.String()
}

// Partition splits the usable terminal rows into one contiguous region per
// trigger, in trigger order from the top of the screen. Every region gets
// an equal share; when the rows do not divide evenly the last region
// absorbs the remainder. Callers must ensure 1 <= len(triggers) <=
// usableRows.
func Partition(triggers []*regexp.Regexp, usableRows, cols int) []*Space {
	n := len(triggers)
	per := usableRows / n
	spaces := make([]*Space, 0, n)
	next := 0
	for i, re := range triggers {
		rows := per
		if i == n-1 {
			rows = usableRows - next
		}
		spaces = append(spaces, &Space{
			startRow: next,
			rowCount: rows,
			trigger:  re,
			header:   headerLine(re.String(), cols),
			state:    Finding,
		})
		next += rows
	}
	return spaces
}

// headerLine builds the decorative rule drawn on a space's first row: the
// trigger text embedded in a run of dashes, bounded to cols-1 cells.
func headerLine(label string, cols int) string {
	width := cols - 1
	if width < 1 {
		return "\n"
	}
	text := "-- " + label + " "
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "")
	}
	if pad := width - runewidth.StringWidth(text); pad > 0 {
		text += strings.Repeat("-", pad)
	}
	return text + "\n"
}
