package display

import "testing"

func TestRenderLinePassThrough(t *testing.T) {
	got := RenderLine("hello\n", 80)
	if got != "hello\n" {
		t.Errorf("expected %q, got %q", "hello\n", got)
	}
}

func TestRenderLineAddsTerminator(t *testing.T) {
	got := RenderLine("no newline", 80)
	if got != "no newline\n" {
		t.Errorf("expected terminator appended, got %q", got)
	}
}

func TestRenderLineNormalizesCRLF(t *testing.T) {
	got := RenderLine("windows\r\n", 80)
	if got != "windows\n" {
		t.Errorf("expected CR stripped, got %q", got)
	}
}

func TestRenderLineTruncation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		cols int
		want string
	}{
		{"below limit", "123456789\n", 11, "123456789\n"},
		{"at cols-1", "123456789\n", 10, "123456789\n"},
		{"at cols", "1234567890\n", 10, "123456789\n"},
		{"over cols", "123456789012345\n", 10, "123456789\n"},
		{"empty", "\n", 10, "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderLine(tt.raw, tt.cols); got != tt.want {
				t.Errorf("RenderLine(%q, %d) = %q, want %q", tt.raw, tt.cols, got, tt.want)
			}
		})
	}
}

func TestRenderLineWideRunes(t *testing.T) {
	// Each CJK rune is two cells wide; six cells of text must shrink to
	// fit under five columns.
	got := RenderLine("日本語\n", 5)
	if got != "日本\n" {
		t.Errorf("expected wide-rune truncation to %q, got %q", "日本\n", got)
	}
}

func TestRenderLineIdempotent(t *testing.T) {
	inputs := []string{"short\n", "1234567890123\n", "no newline", "日本語テスト\n"}
	for _, raw := range inputs {
		for _, cols := range []int{5, 10, 80} {
			once := RenderLine(raw, cols)
			twice := RenderLine(once, cols)
			if once != twice {
				t.Errorf("RenderLine not idempotent for (%q, %d): %q then %q", raw, cols, once, twice)
			}
		}
	}
}
