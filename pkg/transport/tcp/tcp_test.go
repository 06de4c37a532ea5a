package tcp

import (
	"net"
	"testing"
	"time"
)

func TestNewDialerRejectsBadAddress(t *testing.T) {
	t.Parallel()

	if _, err := NewDialer("not an address"); err == nil {
		t.Error("NewDialer(bad addr) error = nil, want error")
	}
}

func TestDialAndServeRoundTrip(t *testing.T) {
	t.Parallel()

	l, err := NewListener("127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}
	defer l.Close()

	handled := make(chan error, 1)
	go l.Serve(func(conn net.Conn) error {
		buf := make([]byte, 16)
		n, err := conn.Read(buf)
		if err != nil {
			handled <- err
			return err
		}
		_, err = conn.Write(buf[:n])
		handled <- err
		return err
	})

	d, err := NewDialer(l.Addr().String())
	if err != nil {
		t.Fatalf("NewDialer() error = %v", err)
	}

	conn, err := d.Dial()
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("echo me")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	buf := make([]byte, 16)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(buf[:n]) != "echo me" {
		t.Errorf("Read() = %q, want %q", buf[:n], "echo me")
	}

	select {
	case err := <-handled:
		if err != nil {
			t.Errorf("handler error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("handler never ran")
	}
}
