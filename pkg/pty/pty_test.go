//go:build linux || darwin
// +build linux darwin

package pty

import (
	"strings"
	"testing"

	"ttybridge/pkg/termios"

	"golang.org/x/sys/unix"
)

func TestOpenReturnsDevicePath(t *testing.T) {
	t.Parallel()

	p, err := Open(nil, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer p.Master.Close()
	defer p.Slave.Close()

	if !strings.HasPrefix(p.Path, "/dev/") {
		t.Errorf("Path = %q, want a /dev/ device path", p.Path)
	}
}

func TestOpenSetsCloseOnExec(t *testing.T) {
	t.Parallel()

	p, err := Open(nil, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer p.Master.Close()
	defer p.Slave.Close()

	for _, raw := range []int{p.Master.Raw(), p.Slave.Raw()} {
		flags, err := unix.FcntlInt(uintptr(raw), unix.F_GETFD, 0)
		if err != nil {
			t.Fatalf("fcntl(%d, F_GETFD): %v", raw, err)
		}
		if flags&unix.FD_CLOEXEC == 0 {
			t.Errorf("descriptor %d missing FD_CLOEXEC", raw)
		}
	}
}

func TestSlaveToMasterRoundTrip(t *testing.T) {
	t.Parallel()

	p, err := Open(nil, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer p.Master.Close()
	defer p.Slave.Close()

	// No newline: default output processing would translate it.
	msg := []byte("written on the slave")
	if _, err := unix.Write(p.Slave.Raw(), msg); err != nil {
		t.Fatalf("write(slave): %v", err)
	}

	buf := make([]byte, 64)
	n, err := unix.Read(p.Master.Raw(), buf)
	if err != nil {
		t.Fatalf("read(master): %v", err)
	}
	if string(buf[:n]) != string(msg) {
		t.Errorf("read(master) = %q, want %q", buf[:n], msg)
	}
}

func TestMasterToSlaveRoundTripRaw(t *testing.T) {
	t.Parallel()

	p, err := Open(nil, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer p.Master.Close()
	defer p.Slave.Close()

	// Raw mode so input is neither echoed nor line buffered.
	if err := termios.MakeRaw(p.Slave.Raw()); err != nil {
		t.Fatalf("termios.MakeRaw(slave): %v", err)
	}

	msg := []byte("typed at the master")
	if _, err := unix.Write(p.Master.Raw(), msg); err != nil {
		t.Fatalf("write(master): %v", err)
	}

	buf := make([]byte, 64)
	n, err := unix.Read(p.Slave.Raw(), buf)
	if err != nil {
		t.Fatalf("read(slave): %v", err)
	}
	if string(buf[:n]) != string(msg) {
		t.Errorf("read(slave) = %q, want %q", buf[:n], msg)
	}
}

func TestOpenAppliesInitialSize(t *testing.T) {
	t.Parallel()

	want := Size{Rows: 40, Cols: 100}

	p, err := Open(nil, &want)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer p.Master.Close()
	defer p.Slave.Close()

	got, err := GetSize(p.Slave.Raw())
	if err != nil {
		t.Fatalf("GetSize(slave) error = %v", err)
	}
	if got.Rows != want.Rows || got.Cols != want.Cols {
		t.Errorf("GetSize(slave) = %dx%d, want %dx%d", got.Rows, got.Cols, want.Rows, want.Cols)
	}
}

func TestSetAndGetSize(t *testing.T) {
	t.Parallel()

	p, err := Open(nil, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer p.Master.Close()
	defer p.Slave.Close()

	tests := []struct {
		name string
		size Size
	}{
		{name: "standard terminal", size: Size{Rows: 24, Cols: 80}},
		{name: "wide terminal", size: Size{Rows: 40, Cols: 120}},
		{name: "with pixel sizes", size: Size{Rows: 50, Cols: 132, X: 1024, Y: 768}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := SetSize(p.Master.Raw(), tc.size); err != nil {
				t.Fatalf("SetSize() error = %v", err)
			}

			got, err := GetSize(p.Slave.Raw())
			if err != nil {
				t.Fatalf("GetSize() error = %v", err)
			}
			if got != tc.size {
				t.Errorf("GetSize() = %+v, want %+v", got, tc.size)
			}
		})
	}
}

func TestCopySize(t *testing.T) {
	t.Parallel()

	src, err := Open(nil, &Size{Rows: 40, Cols: 100})
	if err != nil {
		t.Fatalf("Open(src) error = %v", err)
	}
	defer src.Master.Close()
	defer src.Slave.Close()

	dst, err := Open(nil, &Size{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Open(dst) error = %v", err)
	}
	defer dst.Master.Close()
	defer dst.Slave.Close()

	CopySize(src.Slave.Raw(), dst.Master.Raw())

	got, err := GetSize(dst.Slave.Raw())
	if err != nil {
		t.Fatalf("GetSize(dst) error = %v", err)
	}
	if got.Rows != 40 || got.Cols != 100 {
		t.Errorf("GetSize(dst) = %dx%d, want 40x100", got.Rows, got.Cols)
	}
}

func TestCopySizeFromBadDescriptorIsSilent(t *testing.T) {
	t.Parallel()

	dst, err := Open(nil, &Size{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("Open(dst) error = %v", err)
	}
	defer dst.Master.Close()
	defer dst.Slave.Close()

	CopySize(-1, dst.Master.Raw()) // must not panic or change dst

	got, err := GetSize(dst.Slave.Raw())
	if err != nil {
		t.Fatalf("GetSize(dst) error = %v", err)
	}
	if got.Rows != 24 || got.Cols != 80 {
		t.Errorf("GetSize(dst) = %dx%d, want unchanged 24x80", got.Rows, got.Cols)
	}
}
