package display

// History is a bounded FIFO of the most recently dispatched rendered lines.
// One buffer is shared by every space: an activation replays the current
// global history regardless of which space the historical lines were shown
// in. Only the engine writes to it, once per input line.
type History struct {
	capacity int
	lines    []string
}

// NewHistory creates a buffer holding at most capacity lines. A capacity of
// zero (or less) produces a buffer that never stores anything.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{capacity: capacity}
}

// Push appends a rendered line, evicting the oldest line once the buffer is
// over capacity. Stored lines are never modified after insertion.
func (h *History) Push(line string) {
	if h.capacity == 0 {
		return
	}
	h.lines = append(h.lines, line)
	if len(h.lines) > h.capacity {
		copy(h.lines, h.lines[1:])
		h.lines = h.lines[:h.capacity]
	}
}

// Snapshot returns the buffered lines in insertion order. The slice is a
// copy; callers may hold it across later pushes.
func (h *History) Snapshot() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Len reports how many lines are currently buffered.
func (h *History) Len() int {
	return len(h.lines)
}
