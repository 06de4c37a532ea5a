//go:build linux || darwin
// +build linux darwin

package tty

import (
	"fmt"
	"os"
	"sync"

	"ttybridge/pkg/fd"
	"ttybridge/pkg/pty"
	"ttybridge/pkg/relay"
	"ttybridge/pkg/termios"

	"golang.org/x/sys/unix"
)

// Client proxies bytes between a pty master and a peer descriptor. The peer
// is put into raw mode for the client's lifetime and restored on Close.
//
// Each direction is served by one pump worker reading and writing through
// poller-backed duplicates of the two endpoints. Closing a duplicate wakes a
// worker parked in a kernel read, so teardown can join every worker before
// any descriptor the client owns is released.
type Client struct {
	master *fd.Fd
	peer   *fd.Fd
	orig   *termios.State

	peerNonblock bool // peer's O_NONBLOCK before binding

	masterFile *os.File
	peerFile   *os.File

	stop *relay.Flag
	done chan struct{}
	wg   sync.WaitGroup

	watchStop chan struct{}
	watchDone chan struct{}

	closeOnce sync.Once
}

// NewClient binds peer to master and starts one pump worker per direction.
// If resize is non-nil, a watcher reacts to SIGWINCH values on it by copying
// the peer's geometry onto the master; all other signal values are ignored.
// Construction failures roll back everything acquired so far.
func NewClient(master, peer *fd.Fd, resize <-chan os.Signal) (*Client, error) {
	orig, err := termios.Snapshot(peer.Raw())
	if err != nil {
		return nil, fmt.Errorf("termios.Snapshot(peer): %s", err)
	}

	peerFlags, err := unix.FcntlInt(uintptr(peer.Raw()), unix.F_GETFL, 0)
	if err != nil {
		return nil, fmt.Errorf("fcntl(peer, F_GETFL): %s", err)
	}

	if err := termios.MakeRaw(peer.Raw()); err != nil {
		return nil, fmt.Errorf("termios.MakeRaw(peer): %s", err)
	}

	masterFile, err := pollable(master, "pty-master")
	if err != nil {
		termios.Restore(peer.Raw(), orig)
		return nil, fmt.Errorf("duplicating master for relay: %s", err)
	}

	peerFile, err := pollable(peer, "peer")
	if err != nil {
		masterFile.Close()
		termios.Restore(peer.Raw(), orig)
		return nil, fmt.Errorf("duplicating peer for relay: %s", err)
	}

	c := &Client{
		master:       master,
		peer:         peer,
		orig:         orig,
		peerNonblock: peerFlags&unix.O_NONBLOCK != 0,
		masterFile:   masterFile,
		peerFile:     peerFile,
		stop:         &relay.Flag{},
		done:         make(chan struct{}, 1),
	}

	c.wg.Add(2)

	// Only the master side leg signals completion: it breaking reliably
	// means the process behind the pty went away.
	go func() {
		defer c.wg.Done()
		relay.Pump(c.stop, c.done, c.masterFile, c.peerFile)
	}()
	go func() {
		defer c.wg.Done()
		relay.Pump(c.stop, nil, c.peerFile, c.masterFile)
	}()

	if resize != nil {
		c.watchStop = make(chan struct{})
		c.watchDone = make(chan struct{})
		go c.watchResize(resize)
	}

	return c, nil
}

// pollable duplicates f, marks the duplicate non-blocking and hands it to
// the runtime poller, so a read parked on it can be interrupted by closing
// the returned file. The non-blocking flag is shared with f through the
// duplicated description; while a client is bound, every reader and writer
// of the endpoint goes through the poller.
func pollable(f *fd.Fd, name string) (*os.File, error) {
	d, err := f.Dup()
	if err != nil {
		return nil, err
	}

	if err := unix.SetNonblock(d.Raw(), true); err != nil {
		d.Close()
		return nil, fmt.Errorf("setting %s non-blocking: %s", name, err)
	}

	return os.NewFile(uintptr(d.Disown()), name), nil
}

func (c *Client) watchResize(resize <-chan os.Signal) {
	defer close(c.watchDone)

	for {
		select {
		case sig, ok := <-resize:
			if !ok {
				return
			}
			if sig != unix.SIGWINCH {
				continue
			}
			c.UpdateWinsize()
		case <-c.watchStop:
			return
		}
	}
}

// UpdateWinsize copies the peer's current geometry onto the master. Safe to
// call at any time; propagation is advisory and never fails loudly.
func (c *Client) UpdateWinsize() {
	pty.CopySize(c.peer.Raw(), c.master.Raw())
}

// Wait blocks until a pump detects a broken connection, e.g. the spawned
// process exited. It returns immediately if shutdown already began. "The far
// end went away" is a normal outcome, not an error; consult the spawned
// process for its exit status.
func (c *Client) Wait() {
	if c.stop.IsSet() {
		return
	}
	<-c.done
}

// Close tears the client down: raises the stop flag, stops and joins the
// resize watcher, closes the poller-backed duplicates to wake any pump still
// parked in the kernel, joins both pumps, and only then restores the peer's
// original termios and file flags and closes the descriptors the client
// owns. No descriptor is released while a worker can still touch it.
// Idempotent.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.stop.Set()

		if c.watchStop != nil {
			close(c.watchStop)
			<-c.watchDone
		}

		c.masterFile.Close()
		c.peerFile.Close()
		c.wg.Wait()

		termios.Restore(c.peer.Raw(), c.orig) // best effort
		unix.SetNonblock(c.peer.Raw(), c.peerNonblock)

		c.master.Close()
		c.peer.Close()
	})

	return nil
}
