// Package app wires wallsift's components together and runs the
// read/dispatch loop for one program run.
package app

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/wallsift/wallsift/internal/config"
	"github.com/wallsift/wallsift/internal/display"
	"github.com/wallsift/wallsift/internal/logger"
	"github.com/wallsift/wallsift/internal/source"
	"github.com/wallsift/wallsift/internal/term"
)

// Application coordinates the line source, the display engine, and the
// terminal surface. The dispatch loop is pull-based and single-threaded:
// the source is read only when the engine has finished drawing the
// previous line.
type Application struct {
	mu      sync.Mutex
	cfg     config.Config
	src     source.Source
	surface term.Surface
	log     *logrus.Entry
	running atomic.Bool
	closed  atomic.Bool
}

// New builds an application from a validated config. A nil log entry
// disables logging. The source and surface default to standard input and
// the real terminal; callers replace them with SetSource and SetSurface
// before Run.
func New(cfg config.Config, log *logrus.Entry) *Application {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Application{cfg: cfg, log: log}
}

// SetSource replaces the input source. Must be called before Run.
func (a *Application) SetSource(s source.Source) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.src = s
}

// SetSurface replaces the terminal surface. Must be called before Run.
func (a *Application) SetSurface(s term.Surface) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.surface = s
}

// Run executes the dispatch loop until end-of-stream. Transient source
// read errors are logged and skipped; terminal write failures are fatal
// and propagate. Returns nil on a normal end-of-stream, including one
// forced by Shutdown.
func (a *Application) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	a.mu.Lock()
	if a.src == nil {
		a.src = source.NewReader(os.Stdin)
	}
	if a.surface == nil {
		a.surface = term.NewTTY(os.Stdout)
	}
	src, surface := a.src, a.surface
	a.mu.Unlock()

	engine := display.New(surface, display.Options{
		Triggers:       a.cfg.Triggers(),
		RestartOnFind:  a.cfg.RestartOnFind,
		ClearOnRestart: a.cfg.ClearOnRestart,
		HistoryLines:   a.cfg.HistoryLines,
	}, logger.Named(a.log, "display"))

	if err := engine.Start(); err != nil {
		return &InitError{Component: "display engine", Err: err}
	}

	srcLog := logger.Named(a.log, "source")
	for {
		line, err := src.ReadLine()
		switch {
		case err == nil:
			if err := engine.Dispatch(line); err != nil {
				return err
			}
		case errors.Is(err, io.EOF), errors.Is(err, os.ErrClosed):
			// os.ErrClosed is how Shutdown interrupts a blocked read.
			a.log.Debug("end of stream")
			return nil
		default:
			srcLog.WithError(err).Warn("read failed, skipping")
		}
	}
}

// Shutdown stops a running application by closing the source, which
// unblocks a pending read and lets Run return normally. Safe to call more
// than once and from any goroutine.
func (a *Application) Shutdown() {
	if !a.closed.CompareAndSwap(false, true) {
		return
	}
	a.mu.Lock()
	src := a.src
	a.mu.Unlock()
	if src != nil {
		if err := src.Close(); err != nil {
			a.log.WithError(err).Debug("closing source")
		}
	}
}
