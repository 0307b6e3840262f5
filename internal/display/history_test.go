package display

import (
	"fmt"
	"testing"
)

func TestHistoryZeroCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Push("a\n")
	h.Push("b\n")
	if h.Len() != 0 {
		t.Errorf("zero-capacity buffer stored %d lines", h.Len())
	}
	if snap := h.Snapshot(); len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %v", snap)
	}
}

func TestHistoryNegativeCapacity(t *testing.T) {
	h := NewHistory(-3)
	h.Push("a\n")
	if h.Len() != 0 {
		t.Errorf("negative-capacity buffer stored %d lines", h.Len())
	}
}

func TestHistoryFIFOEviction(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(fmt.Sprintf("line %d\n", i))
	}
	want := []string{"line 3\n", "line 4\n", "line 5\n"}
	snap := h.Snapshot()
	if len(snap) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(snap))
	}
	for i, line := range want {
		if snap[i] != line {
			t.Errorf("snapshot[%d] = %q, want %q", i, snap[i], line)
		}
	}
}

func TestHistoryBoundHolds(t *testing.T) {
	h := NewHistory(4)
	for i := 0; i < 100; i++ {
		h.Push("x\n")
		if h.Len() > 4 {
			t.Fatalf("buffer grew past capacity: %d", h.Len())
		}
	}
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := NewHistory(2)
	h.Push("a\n")
	snap := h.Snapshot()
	snap[0] = "mutated\n"
	if got := h.Snapshot()[0]; got != "a\n" {
		t.Errorf("buffer contents changed through snapshot: %q", got)
	}

	// A snapshot taken before later pushes must not change either.
	before := h.Snapshot()
	h.Push("b\n")
	h.Push("c\n")
	if before[0] != "a\n" {
		t.Errorf("held snapshot changed after pushes: %q", before[0])
	}
}
