package pipeio

import (
	"os"

	"github.com/muesli/cancelreader"
)

// Stdio exposes the process's standard streams as a ReadWriteCloser. Where
// the platform supports it, stdin reads go through a cancelable reader so a
// relay blocked on the terminal can be unblocked via Close.
type Stdio struct {
	stdin            *os.File
	cancellableStdin cancelreader.CancelReader

	stdout *os.File
}

// NewStdio wraps os.Stdin/os.Stdout, with cancelable stdin if supported.
func NewStdio() *Stdio {
	out := Stdio{
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}

	cancellableStdin, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		return &out
	}

	out.cancellableStdin = cancellableStdin
	return &out
}

// Read reads from stdin, through the cancelable reader if available.
func (s *Stdio) Read(p []byte) (n int, err error) {
	if s.cancellableStdin != nil {
		return s.cancellableStdin.Read(p)
	}

	return s.stdin.Read(p)
}

// Write writes to stdout.
func (s *Stdio) Write(p []byte) (n int, err error) {
	return s.stdout.Write(p)
}

// Close cancels a pending stdin read if a cancelable reader is in use. It
// never closes the real standard streams.
func (s *Stdio) Close() error {
	if s.cancellableStdin != nil {
		s.cancellableStdin.Cancel()
	}
	return nil
}
