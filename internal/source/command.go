package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
)

// Command runs a shell command under a pseudo-terminal and streams its
// combined output. A pty rather than a pipe keeps tools that check isatty
// in their line-buffered, human-oriented output mode.
type Command struct {
	cmd  *exec.Cmd
	tty  *os.File
	r    *bufio.Reader
	once sync.Once
}

// NewCommand starts command through the shell.
func NewCommand(command string) (*Command, error) {
	cmd := exec.Command("/bin/sh", "-c", command)
	tty, err := pty.Start(cmd)
	if err != nil {
		return nil, fmt.Errorf("starting %q: %w", command, err)
	}
	return &Command{
		cmd: cmd,
		tty: tty,
		r:   bufio.NewReader(tty),
	}, nil
}

// ReadLine returns the next output line. Once the child exits the pty read
// fails (EIO on Linux); every failure after the last full line is reported
// as end-of-stream.
func (s *Command) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if line != "" {
			return line, nil
		}
		return "", io.EOF
	}
	return line, nil
}

// Close tears the pty down and reaps the child. Safe to call more than
// once.
func (s *Command) Close() error {
	s.once.Do(func() {
		s.tty.Close()
		if s.cmd.Process != nil {
			s.cmd.Process.Kill()
		}
		s.cmd.Wait()
	})
	return nil
}
