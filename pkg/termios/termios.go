//go:build linux || darwin
// +build linux darwin

// Package termios snapshots, mutates and restores the terminal mode of a
// file descriptor. Raw mode here is deliberately narrower than cfmakeraw:
// it disables echo, canonical input and signal generation, turns break
// conditions into input and leaves output processing alone, which is what an
// interactive pty proxy needs on its peer side.
package termios

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// State is an immutable snapshot of a descriptor's termios configuration.
type State struct {
	attr unix.Termios
}

// Snapshot captures the current termios configuration of fd.
func Snapshot(fd int) (*State, error) {
	attr, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("tcgetattr(%d): %s", fd, err)
	}

	return &State{attr: *attr}, nil
}

// MakeRaw puts fd into raw mode: no echo, no line buffering, no
// signal-generating control characters, BRKINT framing, no CR-to-NL
// translation, and reads that return as soon as one byte is available.
// Applying it twice is a no-op the second time.
func MakeRaw(fd int) error {
	attr, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("tcgetattr(%d): %s", fd, err)
	}

	attr.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG
	attr.Iflag &^= unix.IGNBRK | unix.ICRNL
	attr.Iflag |= unix.BRKINT
	attr.Cc[unix.VMIN] = 1
	attr.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, attr); err != nil {
		return fmt.Errorf("tcsetattr(%d, TCSAFLUSH): %s", fd, err)
	}
	return nil
}

// Restore puts fd back into the configuration captured in state. Callers on
// teardown paths ignore the returned error: cleanup must not fail.
func Restore(fd int, state *State) error {
	attr := state.attr
	if err := unix.IoctlSetTermios(fd, ioctlSetTermiosFlush, &attr); err != nil {
		return fmt.Errorf("tcsetattr(%d, TCSAFLUSH): %s", fd, err)
	}
	return nil
}

// Apply sets fd to the snapshot without the flush semantics of Restore. It
// is used to seed a freshly allocated pty slave with a template's mode.
func Apply(fd int, state *State) error {
	attr := state.attr
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &attr); err != nil {
		return fmt.Errorf("tcsetattr(%d): %s", fd, err)
	}
	return nil
}
