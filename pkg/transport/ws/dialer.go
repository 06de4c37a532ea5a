// Package ws provides the WebSocket transport, for environments where only
// HTTP traffic passes.
package ws

import (
	"context"
	"fmt"
	"net"

	"github.com/coder/websocket"
)

// Dialer dials WebSocket connections to one address.
type Dialer struct {
	url string
}

// NewDialer creates a WebSocket dialer for addr.
func NewDialer(addr string) *Dialer {
	return &Dialer{
		url: fmt.Sprintf("ws://%s", addr),
	}
}

// Dial connects and returns the WebSocket wrapped as a net.Conn carrying
// binary messages.
func (d *Dialer) Dial(ctx context.Context) (net.Conn, error) {
	c, _, err := websocket.Dial(ctx, d.url, &websocket.DialOptions{
		Subprotocols: []string{"bin"},
	})
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial(%s): %s", d.url, err)
	}

	return websocket.NetConn(ctx, c, websocket.MessageBinary), nil
}
