// Package udp provides a UDP transport with KCP on top for reliable,
// ordered delivery, so a terminal session survives lossy links.
package udp

import (
	"fmt"
	"net"

	kcp "github.com/xtaci/kcp-go/v5"
)

// Dialer dials KCP sessions over UDP to one address.
type Dialer struct {
	remoteAddr *net.UDPAddr
}

// NewDialer creates a UDP/KCP dialer for addr.
func NewDialer(addr string) (*Dialer, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("net.ResolveUDPAddr(udp, %s): %s", addr, err)
	}

	return &Dialer{
		remoteAddr: udpAddr,
	}, nil
}

// Dial establishes a KCP session to the configured address.
func (d *Dialer) Dial() (net.Conn, error) {
	conn, err := net.ListenPacket("udp", ":0")
	if err != nil {
		return nil, fmt.Errorf("net.ListenPacket(udp, :0): %s", err)
	}

	kcpConn, err := kcp.NewConn(d.remoteAddr.String(), nil, 0, 0, conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("kcp.NewConn(%s): %s", d.remoteAddr.String(), err)
	}

	tune(kcpConn)
	return kcpConn, nil
}

// tune configures a KCP session for interactive traffic: fast resend, no
// congestion-control throttling, stream mode.
func tune(c *kcp.UDPSession) {
	c.SetNoDelay(1, 10, 2, 1)
	c.SetStreamMode(true)
	c.SetWindowSize(1024, 1024)
}
