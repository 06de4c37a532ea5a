//go:build linux || darwin
// +build linux darwin

package pty

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// GetSize queries the terminal geometry of fd.
func GetSize(fd int) (Size, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, fmt.Errorf("ioctl(%d, TIOCGWINSZ): %s", fd, err)
	}

	return Size{
		Rows: ws.Row,
		Cols: ws.Col,
		X:    ws.Xpixel,
		Y:    ws.Ypixel,
	}, nil
}

// SetSize applies the geometry to fd.
func SetSize(fd int, size Size) error {
	ws := unix.Winsize{
		Row:    size.Rows,
		Col:    size.Cols,
		Xpixel: size.X,
		Ypixel: size.Y,
	}
	if err := unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, &ws); err != nil {
		return fmt.Errorf("ioctl(%d, TIOCSWINSZ): %s", fd, err)
	}
	return nil
}

// CopySize reads src's geometry and applies it to dst. Resize propagation is
// advisory, so either step failing silently does nothing.
func CopySize(src, dst int) {
	size, err := GetSize(src)
	if err != nil {
		return
	}

	SetSize(dst, size) // best effort
}
