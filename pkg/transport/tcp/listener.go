package tcp

import (
	"fmt"
	"net"
	"sync"

	"ttybridge/pkg/log"
	"ttybridge/pkg/transport"
)

// Listener accepts TCP connections, handling one session at a time.
type Listener struct {
	nl net.Listener

	rdy bool // whether we can handle a new connection
	mu  sync.Mutex
}

// NewListener listens on addr.
func NewListener(addr string) (*Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveTCPAddr(tcp, %s): %s", addr, err)
	}

	nl, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen(tcp, %s): %s", addr, err)
	}

	return &Listener{
		nl:  nl,
		rdy: true,
	}, nil
}

// Serve accepts connections and hands them to handle, one at a time.
// Connections arriving while a session runs are closed right away.
func (l *Listener) Serve(handle transport.Handler) error {
	for {
		conn, err := l.nl.Accept()
		if err != nil {
			return fmt.Errorf("Accept(): %s", err)
		}

		l.mu.Lock()
		if !l.rdy {
			conn.Close() // we already handle a connection
			l.mu.Unlock()
			continue
		}
		l.rdy = false
		l.mu.Unlock()

		go func() {
			defer conn.Close()
			defer func() {
				l.mu.Lock()
				l.rdy = true
				l.mu.Unlock()
			}()

			log.InfoMsg("New TCP connection from %s\n", conn.RemoteAddr())

			if err := handle(conn); err != nil {
				log.ErrorMsg("Handling connection: %s\n", err)
			}
		}()
	}
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.nl.Addr()
}

// Close shuts the listener down.
func (l *Listener) Close() error {
	return l.nl.Close()
}
