//go:build linux || darwin
// +build linux darwin

// Package tty builds terminal sessions on top of a pseudo-terminal pair: a
// Server owns the pty and spawns a child process on its slave side, a Client
// binds the master to a peer descriptor (typically the caller's own
// terminal) and shovels bytes both ways until one side goes away.
package tty

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"ttybridge/pkg/fd"
	"ttybridge/pkg/pty"
	"ttybridge/pkg/termios"
)

// ErrNoSlave is returned by Spawn when the slave descriptor was already
// consumed by an earlier spawn.
var ErrNoSlave = errors.New("pty slave already consumed")

// Server owns a pty pair. The slave is handed to exactly one spawned
// process; the master stays valid for the server's lifetime.
type Server struct {
	master *fd.Fd
	slave  *fd.Fd // nil once consumed
	path   string
}

// NewServer allocates a pty. If template is non-nil, its termios and window
// size are captured and applied to the new pty, so a spawned shell inherits
// the caller's terminal look and feel.
func NewServer(template *fd.Fd) (*Server, error) {
	var attr *termios.State
	var size *pty.Size

	if template != nil {
		a, err := termios.Snapshot(template.Raw())
		if err != nil {
			return nil, fmt.Errorf("termios.Snapshot(template): %s", err)
		}

		s, err := pty.GetSize(template.Raw())
		if err != nil {
			return nil, fmt.Errorf("pty.GetSize(template): %s", err)
		}

		attr, size = a, &s
	}

	p, err := pty.Open(attr, size)
	if err != nil {
		return nil, fmt.Errorf("pty.Open(): %s", err)
	}

	return &Server{
		master: p.Master,
		slave:  p.Slave,
		path:   p.Path,
	}, nil
}

// Path returns the slave device path, stable for the server's lifetime.
func (s *Server) Path() string {
	return s.path
}

// Master returns a non-owning view of the master descriptor, usable to bind
// a Client. Closing the returned Fd does not release the descriptor.
func (s *Server) Master() *fd.Fd {
	return fd.New(s.master.Raw(), false)
}

// TakeSlave transfers the slave out of the server, for callers that want to
// wire it to a process themselves. Returns nil if already consumed.
func (s *Server) TakeSlave() *fd.Fd {
	slave := s.slave
	s.slave = nil
	return slave
}

// Spawn starts cmd with its standard input, output and error each bound to
// an independent duplicate of the pty slave, in a new session so the slave
// becomes its controlling terminal. The server's own slave descriptor is
// dropped right after spawning: keeping it would prevent end-of-file from
// ever reaching a waiting proxy.
func (s *Server) Spawn(cmd *exec.Cmd) error {
	if s.slave == nil {
		return ErrNoSlave
	}

	defer func() {
		s.slave.Close()
		s.slave = nil
	}()

	stdin, err := s.slave.File(s.path)
	if err != nil {
		return fmt.Errorf("duplicating slave for stdin: %s", err)
	}
	defer stdin.Close()

	stdout, err := s.slave.File(s.path)
	if err != nil {
		return fmt.Errorf("duplicating slave for stdout: %s", err)
	}
	defer stdout.Close()

	stderr, err := s.slave.File(s.path)
	if err != nil {
		return fmt.Errorf("duplicating slave for stderr: %s", err)
	}
	defer stderr.Close()

	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
	cmd.SysProcAttr.Setctty = true
	cmd.SysProcAttr.Ctty = 0 // stdin in the child

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("cmd.Start(): %s", err)
	}

	return nil
}

// NewClient binds peer to this server's master and starts the pump workers.
func (s *Server) NewClient(peer *fd.Fd, resize <-chan os.Signal) (*Client, error) {
	return NewClient(s.Master(), peer, resize)
}

// Close releases the pty descriptors still held by the server.
func (s *Server) Close() error {
	if s.slave != nil {
		s.slave.Close()
		s.slave = nil
	}
	return s.master.Close()
}
