package source

import (
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"
)

func TestCommandStreamsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty sources are unix-only")
	}

	s, err := NewCommand("printf 'alpha\\nbeta\\n'")
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}
	defer s.Close()

	// A pty may deliver \r\n; compare the trimmed text.
	for _, want := range []string{"alpha", "beta"} {
		got, err := s.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		if trimmed := strings.TrimRight(got, "\r\n"); trimmed != want {
			t.Errorf("got %q, want %q", trimmed, want)
		}
	}
}

func TestCommandEOFAfterExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty sources are unix-only")
	}

	s, err := NewCommand("true")
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}
	defer s.Close()

	for {
		_, err := s.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Errorf("expected io.EOF after exit, got %v", err)
			}
			break
		}
	}
}

func TestCommandStartFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty sources are unix-only")
	}

	// The shell itself starts fine and then fails; the stream just ends.
	s, err := NewCommand("exit 3")
	if err != nil {
		t.Fatalf("NewCommand failed: %v", err)
	}
	defer s.Close()
	for {
		if _, err := s.ReadLine(); err != nil {
			break
		}
	}
}
