package pipeio

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"
)

func TestPipeBidirectionalCopy(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	left, leftFar := net.Pipe()
	right, rightFar := net.Pipe()
	defer leftFar.Close()
	defer rightFar.Close()

	var mu sync.Mutex
	var logged []error
	logFunc := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		logged = append(logged, err)
	}

	done := make(chan struct{})
	go func() {
		Pipe(ctx, left, right, logFunc)
		close(done)
	}()

	// leftFar -> left -> right -> rightFar
	go leftFar.Write([]byte("ping"))

	buf := make([]byte, 16)
	rightFar.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := rightFar.Read(buf)
	if err != nil {
		t.Fatalf("rightFar.Read() error = %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Errorf("rightFar.Read() = %q, want %q", buf[:n], "ping")
	}

	// rightFar -> right -> left -> leftFar
	go rightFar.Write([]byte("pong"))

	leftFar.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err = leftFar.Read(buf)
	if err != nil {
		t.Fatalf("leftFar.Read() error = %v", err)
	}
	if string(buf[:n]) != "pong" {
		t.Errorf("leftFar.Read() = %q, want %q", buf[:n], "pong")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("Pipe() did not return after context cancellation")
	}
}

func TestPipeReturnsWhenOneSideCloses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	left, leftFar := net.Pipe()
	right, rightFar := net.Pipe()
	defer rightFar.Close()

	done := make(chan struct{})
	go func() {
		Pipe(ctx, left, right, func(error) {})
		close(done)
	}()

	leftFar.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("Pipe() did not return after one endpoint closed")
	}
}

func TestStdioCloseCancelsRead(t *testing.T) {
	t.Parallel()

	s := NewStdio()
	if s == nil {
		t.Fatal("NewStdio() = nil")
	}

	// Close must not touch the real standard streams and must not error.
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
