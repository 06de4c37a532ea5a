//go:build linux || darwin
// +build linux darwin

// Package remote serves a pty session over a network connection and
// attaches a local terminal to one. The connection is split into a data
// channel carrying the terminal bytes and a control channel carrying
// window-size updates.
package remote

import (
	"context"
	"encoding/gob"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"

	"ttybridge/pkg/config"
	"ttybridge/pkg/log"
	"ttybridge/pkg/mux"
	"ttybridge/pkg/pipeio"
	"ttybridge/pkg/pty"
	"ttybridge/pkg/tty"
)

// Handle runs one serving session on conn: spawn cfg.Exec on a fresh pty,
// relay the master over the data channel and apply resize messages from the
// control channel. Returns when the program exits or the connection breaks.
func Handle(ctx context.Context, conn net.Conn, cfg *config.Config) error {
	connCtl, connData, err := mux.AcceptChannels(conn)
	if err != nil {
		return fmt.Errorf("mux.AcceptChannels(conn): %s", err)
	}
	defer connCtl.Close()
	defer connData.Close()

	srv, err := tty.NewServer(nil)
	if err != nil {
		return fmt.Errorf("tty.NewServer(): %s", err)
	}
	defer srv.Close()

	cmd := exec.Command(cfg.Exec)
	if err := srv.Spawn(cmd); err != nil {
		return fmt.Errorf("srv.Spawn(%s): %s", cfg.Exec, err)
	}

	master, err := srv.Master().File(srv.Path())
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return fmt.Errorf("duplicating master: %s", err)
	}
	defer master.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go applyResizes(ctx, connCtl, master, cfg.Verbose)

	done := make(chan struct{}, 2)

	go func() {
		cmd.Wait()
		done <- struct{}{}
	}()

	go func() {
		pipeio.Pipe(ctx, master, connData, func(err error) {
			if cfg.Verbose {
				log.ErrorMsg("Pipe(master, connData): %s\n", err)
			}
		})
		cmd.Process.Kill()
		done <- struct{}{}
	}()

	<-done
	log.VerboseMsg(cfg.Verbose, "Session on %s ended\n", srv.Path())

	return nil
}

// applyResizes decodes window sizes from the control channel and applies
// them to the pty master, so the spawned program sees the far terminal's
// geometry.
func applyResizes(ctx context.Context, connCtl net.Conn, master *os.File, verbose bool) {
	dec := gob.NewDecoder(connCtl)

	for ctx.Err() == nil {
		var size pty.Size
		if err := dec.Decode(&size); err != nil {
			if err == io.EOF {
				return
			}
			if verbose {
				log.ErrorMsg("decoding terminal size: %s\n", err)
			}
			return
		}

		if err := pty.SetSize(int(master.Fd()), size); err != nil && verbose {
			log.ErrorMsg("applying terminal size: %s\n", err)
		}
	}
}
