//go:build linux || darwin
// +build linux darwin

package remote

import (
	"context"
	"encoding/gob"
	"fmt"
	"net"
	"os"
	"time"

	"ttybridge/pkg/log"
	"ttybridge/pkg/mux"
	"ttybridge/pkg/pipeio"
	"ttybridge/pkg/pty"

	"golang.org/x/term"
)

// Attach binds the local terminal to a served session on conn: raw mode on
// stdin for the duration, stdio relayed over the data channel, local
// terminal size pushed over the control channel. Returns when the far side
// closes the session.
func Attach(ctx context.Context, conn net.Conn, verbose bool) error {
	connCtl, connData, err := mux.OpenChannels(conn)
	if err != nil {
		return fmt.Errorf("mux.OpenChannels(conn): %s", err)
	}
	defer connCtl.Close()
	defer connData.Close()

	log.VerboseMsg(verbose, "Enabling raw mode\n")
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("setting terminal to raw mode: %s", err)
	}

	defer func() {
		log.VerboseMsg(verbose, "Disabling raw mode\n")
		term.Restore(int(os.Stdin.Fd()), oldState)
		fmt.Printf("\033[2K\r") // clear line
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go sendResizes(ctx, connCtl, verbose)

	pipeio.Pipe(ctx, pipeio.NewStdio(), connData, func(err error) {
		if verbose {
			log.ErrorMsg("Pipe(stdio, connData): %s\n", err)
		}
	})

	return nil
}

// sendResizes pushes the local terminal's geometry over the control channel
// whenever it changes, polling once a second. The first tick after attach
// seeds the far side with the initial size.
func sendResizes(ctx context.Context, connCtl net.Conn, verbose bool) {
	enc := gob.NewEncoder(connCtl)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var sizeRemote pty.Size
	for {
		select {
		case <-ticker.C:
			size, err := pty.GetSize(int(os.Stdin.Fd()))
			if err != nil {
				if verbose {
					log.ErrorMsg("can't identify terminal size: %s\n", err)
				}
				continue
			}

			if size != sizeRemote {
				if err := enc.Encode(size); err != nil {
					if verbose {
						log.ErrorMsg("can't send new terminal size: %s\n", err)
					}
					continue
				}
				sizeRemote = size
			}
		case <-ctx.Done():
			return
		}
	}
}
