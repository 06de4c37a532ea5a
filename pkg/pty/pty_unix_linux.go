//go:build linux
// +build linux

package pty

import (
	"fmt"

	"ttybridge/pkg/fd"

	"golang.org/x/sys/unix"
)

func openMaster() (*fd.Fd, error) {
	m, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open(/dev/ptmx): %s", err)
	}

	return fd.New(m, true), nil
}

func slavePath(master *fd.Fd) (string, error) {
	n, err := unix.IoctlGetInt(master.Raw(), unix.TIOCGPTN)
	if err != nil {
		return "", fmt.Errorf("ioctl(TIOCGPTN): %s", err)
	}

	return fmt.Sprintf("/dev/pts/%d", n), nil
}

// grant is a no-op on Linux with devpts: the slave node exists with the
// right owner as soon as the master is open.
func grant(master *fd.Fd) error {
	return nil
}

func unlock(master *fd.Fd) error {
	if err := unix.IoctlSetPointerInt(master.Raw(), unix.TIOCSPTLCK, 0); err != nil {
		return fmt.Errorf("ioctl(TIOCSPTLCK): %s", err)
	}
	return nil
}

func openSlave(path string) (*fd.Fd, error) {
	s, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open(%s): %s", path, err)
	}

	return fd.New(s, true), nil
}
