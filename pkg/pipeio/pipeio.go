// Package pipeio relays bytes between two ReadWriteClosers in both
// directions. It is the io.Copy-based counterpart of the session pump in
// pkg/relay, used where the endpoints are streams (network conns,
// multiplexed channels) rather than terminal descriptors.
package pipeio

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Pipe copies rwc1 to rwc2 and back until either direction fails or ctx is
// cancelled. Both endpoints are closed exactly once, as soon as the first
// direction breaks, which unblocks the other. Copy errors are reported to
// logfunc; a broken connection is the expected way a session ends, so they
// are never returned.
func Pipe(ctx context.Context, rwc1 io.ReadWriteCloser, rwc2 io.ReadWriteCloser, logfunc func(error)) {
	var wg sync.WaitGroup
	var o sync.Once

	done := make(chan struct{})
	closeBoth := func() {
		rwc1.Close()
		rwc2.Close()
	}

	wg.Add(2)

	go func() {
		defer wg.Done()
		if _, err := io.Copy(rwc1, rwc2); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc1, rwc2): %s", err))
		}
		o.Do(closeBoth)
	}()

	go func() {
		defer wg.Done()
		if _, err := io.Copy(rwc2, rwc1); err != nil {
			logfunc(fmt.Errorf("io.Copy(rwc2, rwc1): %s", err))
		}
		o.Do(closeBoth)
	}()

	go func() {
		select {
		case <-ctx.Done():
			o.Do(closeBoth)
		case <-done:
		}
	}()

	wg.Wait()
	close(done)
}
