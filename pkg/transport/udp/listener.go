package udp

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"ttybridge/pkg/log"
	"ttybridge/pkg/transport"

	kcp "github.com/xtaci/kcp-go/v5"
)

// Listener accepts KCP sessions over UDP, handling one at a time.
type Listener struct {
	kcpListener *kcp.Listener

	rdy bool
	mu  sync.Mutex
}

// NewListener listens for KCP sessions on addr.
func NewListener(addr string) (*Listener, error) {
	if _, err := net.ResolveUDPAddr("udp", addr); err != nil {
		return nil, fmt.Errorf("net.ResolveUDPAddr(udp, %s): %s", addr, err)
	}

	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen(udp, %s): %s", addr, err)
	}

	kcpListener, err := kcp.ServeConn(nil, 0, 0, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("kcp.ServeConn(): %s", err)
	}

	return &Listener{
		kcpListener: kcpListener,
		rdy:         true,
	}, nil
}

// Serve accepts sessions and hands them to handle, one at a time. Sessions
// arriving while one runs are closed right away.
func (l *Listener) Serve(handle transport.Handler) error {
	for {
		kcpConn, err := l.kcpListener.AcceptKCP()
		if err != nil {
			if closedErr(err) {
				return nil
			}
			return fmt.Errorf("AcceptKCP(): %s", err)
		}

		tune(kcpConn)

		l.mu.Lock()
		if !l.rdy {
			kcpConn.Close()
			l.mu.Unlock()
			continue
		}
		l.rdy = false
		l.mu.Unlock()

		go func(conn *kcp.UDPSession) {
			defer conn.Close()
			defer func() {
				l.mu.Lock()
				l.rdy = true
				l.mu.Unlock()
			}()

			log.InfoMsg("New KCP connection from %s\n", conn.RemoteAddr())

			if err := handle(conn); err != nil {
				log.ErrorMsg("Handling connection: %s\n", err)
			}
		}(kcpConn)
	}
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.kcpListener.Addr()
}

// Close shuts the listener down.
func (l *Listener) Close() error {
	return l.kcpListener.Close()
}

func closedErr(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		strings.Contains(err.Error(), "use of closed network connection")
}
