// Package fd wraps raw file descriptors with explicit ownership. An Fd
// closes its descriptor at most once, and only if it owns it; ownership can
// be transferred out with Disown before handing the descriptor to a child
// process or another owner.
package fd

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Fd is an owned file descriptor.
type Fd struct {
	raw    int
	close  bool // close raw when released
	closed bool
}

// New wraps raw. If closeOnRelease is set, Close releases the descriptor.
func New(raw int, closeOnRelease bool) *Fd {
	return &Fd{
		raw:   raw,
		close: closeOnRelease,
	}
}

// Raw returns the underlying descriptor without transferring ownership.
func (f *Fd) Raw() int {
	return f.raw
}

// Dup duplicates the descriptor. The new Fd refers to the same kernel
// object but has an independent lifetime and is always owned. The duplicate
// is created with close-on-exec set atomically.
func (f *Fd) Dup() (*Fd, error) {
	nfd, err := unix.FcntlInt(uintptr(f.raw), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("fcntl(%d, F_DUPFD_CLOEXEC): %s", f.raw, err)
	}

	return New(nfd, true), nil
}

// Disown returns the raw descriptor and disables auto-close. The caller
// becomes responsible for closing it.
func (f *Fd) Disown() int {
	f.close = false
	return f.raw
}

// File duplicates the descriptor and returns it as an *os.File with an
// independent lifetime.
func (f *Fd) File(name string) (*os.File, error) {
	d, err := f.Dup()
	if err != nil {
		return nil, err
	}

	return os.NewFile(uintptr(d.Disown()), name), nil
}

// Close releases the descriptor if owned. It is idempotent and never
// escalates close failures: releasing a resource must not itself fail.
func (f *Fd) Close() error {
	if f.closed || !f.close {
		return nil
	}
	f.closed = true

	unix.Close(f.raw) // best effort
	return nil
}
