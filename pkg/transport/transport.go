// Package transport provides the network transports a pty session can be
// served over. Each transport exposes a Dialer (NewDialer/Dial) and a
// Listener (NewListener/Serve/Close):
//
//   - tcp: plain TCP with keep-alive
//   - ws: WebSocket, for environments where only HTTP passes
//   - udp: KCP over UDP, reliable stream semantics on lossy links
//
// Listeners serve one session at a time: a terminal session has exactly one
// far end, so extra connections are closed immediately.
package transport

import "net"

// Handler processes one accepted connection. The connection is closed after
// the handler returns.
type Handler func(net.Conn) error
