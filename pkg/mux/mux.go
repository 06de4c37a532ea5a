// Package mux splits one network connection into a control channel and a
// data channel. The data channel carries the raw terminal bytes; the control
// channel carries window-size updates, so resizes never race with session
// data.
package mux

import (
	"fmt"
	"io"
	stdlog "log"
	"net"

	"github.com/hashicorp/yamux"
)

// OpenChannels opens ctl and data channels on conn, in that order. Used by
// the attaching side.
func OpenChannels(conn net.Conn) (net.Conn, net.Conn, error) {
	session, err := yamux.Client(conn, config())
	if err != nil {
		return nil, nil, fmt.Errorf("yamux.Client(conn): %s", err)
	}

	connCtl, err := session.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("session.Open(), ctl: %s", err)
	}

	connData, err := session.Open()
	if err != nil {
		connCtl.Close()
		return nil, nil, fmt.Errorf("session.Open(), data: %s", err)
	}

	return connCtl, connData, nil
}

// AcceptChannels accepts ctl and data channels on conn, in that order. Used
// by the serving side.
func AcceptChannels(conn net.Conn) (net.Conn, net.Conn, error) {
	session, err := yamux.Server(conn, config())
	if err != nil {
		return nil, nil, fmt.Errorf("yamux.Server(conn): %s", err)
	}

	connCtl, err := session.Accept()
	if err != nil {
		return nil, nil, fmt.Errorf("session.Accept(), ctl: %s", err)
	}

	connData, err := session.Accept()
	if err != nil {
		connCtl.Close()
		return nil, nil, fmt.Errorf("session.Accept(), data: %s", err)
	}

	return connCtl, connData, nil
}

func config() *yamux.Config {
	cfg := yamux.DefaultConfig()
	cfg.LogOutput = nil
	cfg.Logger = stdlog.New(io.Discard, "", stdlog.LstdFlags) // silence yamux console logging
	return cfg
}
