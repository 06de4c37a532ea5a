package ws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"ttybridge/pkg/log"
	"ttybridge/pkg/transport"

	"github.com/coder/websocket"
)

// Listener upgrades incoming HTTP connections to WebSocket and handles one
// session at a time.
type Listener struct {
	nl     net.Listener
	server *http.Server

	rdy bool
	mu  sync.Mutex
}

// NewListener listens on addr for WebSocket upgrades.
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

// Serve upgrades connections and hands them to handle, one at a time.
// Upgrades arriving while a session runs are rejected with 503.
func (l *Listener) Serve(handle transport.Handler) error {
	l.server = &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l.mu.Lock()
			if !l.rdy {
				l.mu.Unlock()
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			l.rdy = false
			l.mu.Unlock()

			defer func() {
				l.mu.Lock()
				l.rdy = true
				l.mu.Unlock()
			}()

			c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
				Subprotocols: []string{"bin"},
			})
			if err != nil {
				log.ErrorMsg("websocket.Accept(): %s\n", err)
				return
			}

			conn := websocket.NetConn(r.Context(), c, websocket.MessageBinary)
			defer conn.Close()

			log.InfoMsg("New WS connection from %s\n", r.RemoteAddr)

			if err := handle(conn); err != nil {
				log.ErrorMsg("Handling connection: %s\n", err)
			}
		}),

		// Sessions are long-lived tunnels; only bound the header phase.
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := l.server.Serve(l.nl); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http.Server.Serve(): %s", err)
	}
	return nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr {
	return l.nl.Addr()
}

// Close shuts the listener down.
func (l *Listener) Close() error {
	if l.server != nil {
		return l.server.Shutdown(context.Background())
	}
	return l.nl.Close()
}
