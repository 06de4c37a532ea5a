// Package config holds the shared session configuration built by the cmd
// layer and consumed by the remote serve/attach code paths.
package config

import (
	"fmt"
	"net"
	"strconv"
)

// Proto selects the network transport of the remote mode.
type Proto string

// Supported transports.
const (
	ProtoTCP Proto = "tcp"
	ProtoWS  Proto = "ws"
	ProtoUDP Proto = "udp"
)

// ParseProto maps a user-supplied transport name to a Proto.
func ParseProto(s string) (Proto, error) {
	switch Proto(s) {
	case ProtoTCP, ProtoWS, ProtoUDP:
		return Proto(s), nil
	default:
		return "", fmt.Errorf("unknown transport %q (want tcp, ws or udp)", s)
	}
}

// Config is the remote session configuration.
type Config struct {
	Host  string // remote host to dial, or bind address when serving
	Port  int
	Proto Proto

	Exec    string // program to run on the pty, serving side only
	Verbose bool
}

// Addr returns the host:port the transport dials or binds.
func (cfg *Config) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// Validate returns all configuration errors rather than just the first, so
// the user can fix everything in one go.
func (cfg *Config) Validate() []error {
	var errors []error

	if cfg.Port < 1 || cfg.Port > 65535 {
		errors = append(errors, fmt.Errorf("port must be in range 1..65535, got %d", cfg.Port))
	}

	if _, err := ParseProto(string(cfg.Proto)); err != nil {
		errors = append(errors, err)
	}

	return errors
}
