package app

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/wallsift/wallsift/internal/config"
	"github.com/wallsift/wallsift/internal/source"
	"github.com/wallsift/wallsift/internal/term"
)

func testConfig(t *testing.T, patterns ...string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Patterns = patterns
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return cfg
}

func TestRunToEndOfStream(t *testing.T) {
	a := New(testConfig(t, "MATCH"), nil)
	a.SetSource(source.NewReader(strings.NewReader("a\nMATCH\nb\n")))
	srf := term.NewNullSurface(6, 40)
	a.SetSurface(srf)

	if err := a.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := srf.Row(1); got != "MATCH" {
		t.Errorf("row 1 = %q, want %q", got, "MATCH")
	}
	if got := srf.Row(2); got != "b" {
		t.Errorf("row 2 = %q, want %q", got, "b")
	}
}

func TestRunTwice(t *testing.T) {
	a := New(testConfig(t, "x"), nil)
	a.SetSource(source.NewReader(strings.NewReader("")))
	a.SetSurface(term.NewNullSurface(6, 40))
	if err := a.Run(); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if err := a.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestRunFailsWhenScreenTooSmall(t *testing.T) {
	a := New(testConfig(t, "a", "b", "c"), nil)
	a.SetSource(source.NewReader(strings.NewReader("")))
	a.SetSurface(term.NewNullSurface(2, 40))
	err := a.Run()
	var initErr *InitError
	if !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %v", err)
	}
}

// A transient read error must be skipped; the stream continues.
type errThenLines struct {
	fired bool
	inner source.Source
}

var errTransient = errors.New("hiccup")

func (s *errThenLines) ReadLine() (string, error) {
	if !s.fired {
		s.fired = true
		return "", errTransient
	}
	return s.inner.ReadLine()
}

func (s *errThenLines) Close() error {
	return s.inner.Close()
}

func TestRunSkipsTransientReadErrors(t *testing.T) {
	a := New(testConfig(t, "MATCH"), nil)
	a.SetSource(&errThenLines{inner: source.NewReader(strings.NewReader("MATCH\n"))})
	srf := term.NewNullSurface(6, 40)
	a.SetSurface(srf)

	if err := a.Run(); err != nil {
		t.Fatalf("Run should survive a transient read error, got %v", err)
	}
	if got := srf.Row(1); got != "MATCH" {
		t.Errorf("row 1 = %q, want %q (line after the error must be processed)", got, "MATCH")
	}
}

// newBlockedPipe returns the read end of a pipe nothing ever writes to, so
// a read on it blocks until the file is closed.
func newBlockedPipe(t *testing.T) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return r
}

func TestShutdownUnblocksRun(t *testing.T) {
	a := New(testConfig(t, "x"), nil)
	src := source.NewReader(newBlockedPipe(t))
	a.SetSource(src)
	a.SetSurface(term.NewNullSurface(6, 40))

	done := make(chan error, 1)
	go func() {
		done <- a.Run()
	}()

	time.Sleep(50 * time.Millisecond)
	a.Shutdown()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run should end cleanly after Shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}

func TestShutdownTwice(t *testing.T) {
	a := New(testConfig(t, "x"), nil)
	a.SetSource(source.NewReader(strings.NewReader("")))
	a.Shutdown()
	a.Shutdown()
}
