package display

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderLine converts a raw input line into a terminal-safe, width-bounded
// line. A line whose visible width is at least cols cells is truncated to
// cols-1 cells so that a printed line can never wrap onto the next terminal
// row. CRLF terminators are normalized and the result always carries exactly
// one trailing newline. Pure function of (raw, cols); idempotent for a
// fixed cols.
func RenderLine(raw string, cols int) string {
	text := strings.TrimSuffix(raw, "\n")
	text = strings.TrimSuffix(text, "\r")
	if runewidth.StringWidth(text) >= cols {
		text = runewidth.Truncate(text, cols-1, "")
	}
	return text + "\n"
}
