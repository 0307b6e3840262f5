// Package source supplies input lines to the display engine: standard
// input, a file, a followed file, or a command running under a pty.
package source

import (
	"bufio"
	"io"
)

// Source yields input lines one at a time. ReadLine blocks until a line is
// available and returns io.EOF at end-of-stream; any other error is
// transient and the caller may keep reading. Close unblocks a pending
// ReadLine.
type Source interface {
	ReadLine() (string, error)
	Close() error
}

// Reader adapts an io.Reader into a Source. Used for standard input and
// plain files.
type Reader struct {
	r *bufio.Reader
	c io.Closer
}

// NewReader wraps r. When r also implements io.Closer, Close is forwarded
// to it.
func NewReader(r io.Reader) *Reader {
	rd := &Reader{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		rd.c = c
	}
	return rd
}

// ReadLine returns the next line including its terminator. A final
// unterminated line is returned with a nil error; io.EOF follows on the
// next call.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.r.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

// Close closes the underlying reader when it is closable.
func (r *Reader) Close() error {
	if r.c != nil {
		return r.c.Close()
	}
	return nil
}
