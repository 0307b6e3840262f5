package source

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Follow tails a file: after reaching the current end of the file it waits
// for the file to grow instead of reporting end-of-stream. In-place
// truncation rewinds to the new start; rename-and-recreate rotation reopens
// the new file. Close unblocks a pending ReadLine with io.EOF.
type Follow struct {
	path    string
	f       *os.File
	r       *bufio.Reader
	watcher *fsnotify.Watcher
	pending string // partial line held until its terminator arrives
	done    chan struct{}
	once    sync.Once
}

// NewFollow opens path and begins watching it. The watch is placed on the
// containing directory rather than the file itself so that
// rename-and-recreate rotation stays visible.
func NewFollow(path string) (*Follow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		f.Close()
		return nil, err
	}
	return &Follow{
		path:    path,
		f:       f,
		r:       bufio.NewReader(f),
		watcher: w,
		done:    make(chan struct{}),
	}, nil
}

// ReadLine returns the next line, blocking across the end of the file until
// more data is appended or the source is closed.
func (s *Follow) ReadLine() (string, error) {
	for {
		chunk, err := s.r.ReadString('\n')
		s.pending += chunk
		if err == nil {
			line := s.pending
			s.pending = ""
			return line, nil
		}
		if err != io.EOF {
			return "", err
		}
		if err := s.waitForChange(); err != nil {
			// Stream is over; surrender any unterminated tail first.
			if s.pending != "" {
				line := s.pending
				s.pending = ""
				return line, nil
			}
			return "", err
		}
	}
}

// waitForChange blocks until the followed file changes or the source is
// closed. It returns io.EOF on close and nil when there may be new data to
// read.
func (s *Follow) waitForChange() error {
	for {
		select {
		case <-s.done:
			return io.EOF
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return io.EOF
			}
			if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0:
				return s.rewindIfTruncated()
			case ev.Op&fsnotify.Create != 0:
				// A new file took the followed name: rotation.
				return s.reopen()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return io.EOF
			}
			return err
		}
	}
}

// rewindIfTruncated restarts from the beginning of the file when its size
// has dropped below the position already consumed.
func (s *Follow) rewindIfTruncated() error {
	fi, err := s.f.Stat()
	if err != nil {
		return err
	}
	pos, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if fi.Size() < pos-int64(s.r.Buffered()) {
		if _, err := s.f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		s.r.Reset(s.f)
		s.pending = ""
	}
	return nil
}

// reopen switches to the file currently at the followed path.
func (s *Follow) reopen() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	s.f.Close()
	s.f = f
	s.r.Reset(f)
	s.pending = ""
	return nil
}

// Close stops the watch and releases the file. Safe to call more than once
// and from a goroutine other than the reader's.
func (s *Follow) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		s.watcher.Close()
		err = s.f.Close()
	})
	return err
}
