// Package logger configures wallsift's file-based debug log. The terminal
// itself belongs to the display engine, so log output never goes to stdout
// or stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Setup builds the root log entry. With an empty path logging is disabled
// entirely (output discarded). Every entry carries a short per-run
// identifier so overlapping runs appending to the same file stay
// distinguishable. The returned closer is nil when no file was opened.
func Setup(path, level string) (*logrus.Entry, io.Closer, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	var closer io.Closer
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("creating log directory: %w", err)
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		log.SetOutput(f)
		closer = f
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, nil, fmt.Errorf("invalid log level %q", level)
	}
	log.SetLevel(lvl)

	return log.WithField("run", uuid.NewString()[:8]), closer, nil
}

// Named returns a child entry tagged with a component name.
func Named(root *logrus.Entry, component string) *logrus.Entry {
	return root.WithField("component", component)
}
