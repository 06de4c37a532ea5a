//go:build darwin
// +build darwin

package pty

import (
	"bytes"
	"fmt"
	"unsafe"

	"ttybridge/pkg/fd"

	"golang.org/x/sys/unix"
)

// compare:
// https://opensource.apple.com/source/Libc/Libc-825.26/stdlib/grantpt.c.auto.html

func openMaster() (*fd.Fd, error) {
	m, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open(/dev/ptmx): %s", err)
	}

	return fd.New(m, true), nil
}

const _IOCPARM_MASK = 0x1fff
const _IOCPARM_LEN = (unix.TIOCPTYGNAME >> 16) & _IOCPARM_MASK

func slavePath(master *fd.Fd) (string, error) {
	buf := make([]byte, _IOCPARM_LEN)

	if err := ioctl(master.Raw(), unix.TIOCPTYGNAME, uintptr(unsafe.Pointer(&buf[0]))); err != nil {
		return "", fmt.Errorf("ioctl(TIOCPTYGNAME): %s", err)
	}

	n := bytes.IndexByte(buf, 0)
	if n == -1 {
		return "", fmt.Errorf("no null byte in TIOCPTYGNAME buffer")
	}

	return string(buf[:n]), nil
}

func grant(master *fd.Fd) error {
	if err := ioctl(master.Raw(), unix.TIOCPTYGRANT, 0); err != nil {
		return fmt.Errorf("ioctl(TIOCPTYGRANT): %s", err)
	}
	return nil
}

func unlock(master *fd.Fd) error {
	if err := ioctl(master.Raw(), unix.TIOCPTYUNLK, 0); err != nil {
		return fmt.Errorf("ioctl(TIOCPTYUNLK): %s", err)
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

func ioctl(fd int, req uint, ptr uintptr) error {
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), ptr)
	if e != 0 {
		return e
	}
	return nil
}
