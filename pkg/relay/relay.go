// Package relay moves bytes one way between the two endpoints of a terminal
// session until a shared stop flag is raised or an endpoint breaks. The
// endpoints are poller-backed files, so a pump parked in a kernel read is
// woken by data, by the far end breaking, or by its source being closed,
// which is how teardown interrupts a worker without waiting for the syscall
// to finish on its own. Transient unavailability and interrupted calls are
// retried inside the runtime and never surface here.
package relay

import (
	"os"
	"sync/atomic"
)

// ChunkSize is the upper bound of a single transfer.
const ChunkSize = 1024

// Flag is a monotonic stop flag shared by all pump workers of one session.
// It only ever goes from unset to set.
type Flag struct {
	v atomic.Bool
}

// Set raises the flag. Setting it again has no effect.
func (f *Flag) Set() {
	f.v.Store(true)
}

// IsSet reports whether the flag has been raised.
func (f *Flag) IsSet() bool {
	return f.v.Load()
}

// Pump relays bytes from src to dst until stop is set or either end breaks.
// End-of-file or any read/write error raises stop so the sibling pumps wind
// down too; closing src from another goroutine surfaces here the same way. A
// chunk read after the flag is raised is dropped, not forwarded: the
// destination is no longer guaranteed valid. On exit, if done is non-nil,
// exactly one completion token is sent without blocking; nobody listening is
// not an error.
func Pump(stop *Flag, done chan<- struct{}, src, dst *os.File) {
	buf := make([]byte, ChunkSize)

	for !stop.IsSet() {
		n, err := src.Read(buf)
		if n > 0 && !stop.IsSet() {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				stop.Set()
				break
			}
		}
		if err != nil {
			stop.Set()
			break
		}
	}

	if done != nil {
		select {
		case done <- struct{}{}:
		default:
		}
	}
}
