//go:build linux || darwin
// +build linux darwin

// Package serve implements the serving side of the remote mode: listen on a
// transport and run a pty session for whoever connects.
package serve

import (
	"context"
	"fmt"
	"net"
	"os"

	"ttybridge/cmd/shared"
	"ttybridge/pkg/config"
	"ttybridge/pkg/log"
	"ttybridge/pkg/remote"
	"ttybridge/pkg/transport"
	"ttybridge/pkg/transport/tcp"
	"ttybridge/pkg/transport/udp"
	"ttybridge/pkg/transport/ws"

	"github.com/urfave/cli/v3"
)

const execFlag = "exec"

// GetCommand returns the serve subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a pty session to remote clients",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			proto, err := config.ParseProto(cmd.String(shared.ProtoFlag))
			if err != nil {
				return err
			}

			cfg := &config.Config{
				Host:    cmd.String(shared.HostFlag),
				Port:    int(cmd.Int(shared.PortFlag)),
				Proto:   proto,
				Exec:    cmd.String(execFlag),
				Verbose: cmd.Bool(shared.VerboseFlag),
			}
			if cfg.Exec == "" {
				cfg.Exec = os.Getenv("SHELL")
			}
			if cfg.Exec == "" {
				cfg.Exec = "/bin/sh"
			}

			if errs := cfg.Validate(); len(errs) > 0 {
				log.ErrorMsg("Argument validation errors:\n")
				for _, err := range errs {
					log.ErrorMsg(" - %s\n", err)
				}
				return fmt.Errorf("exiting")
			}

			return run(ctx, cfg)
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  shared.HostFlag,
				Usage: "Address to bind (default: all interfaces)",
			},
			&cli.IntFlag{
				Name:     shared.PortFlag,
				Aliases:  []string{"p"},
				Usage:    "Port to listen on",
				Required: true,
			},
			&cli.StringFlag{
				Name:    execFlag,
				Aliases: []string{"e"},
				Usage:   "Program to run per session (defaults to $SHELL)",
			},
		}, shared.GetFlags()...),
	}
}

type listener interface {
	Serve(transport.Handler) error
	Close() error
}

func run(ctx context.Context, cfg *config.Config) error {
	l, err := newListener(cfg)
	if err != nil {
		return fmt.Errorf("listening on %s (%s): %s", cfg.Addr(), cfg.Proto, err)
	}
	defer l.Close()

	log.InfoMsg("Serving %s on %s (%s)\n", cfg.Exec, cfg.Addr(), cfg.Proto)

	return l.Serve(func(conn net.Conn) error {
		return remote.Handle(ctx, conn, cfg)
	})
}

func newListener(cfg *config.Config) (listener, error) {
	switch cfg.Proto {
	case config.ProtoWS:
		return ws.NewListener(cfg.Addr())
	case config.ProtoUDP:
		return udp.NewListener(cfg.Addr())
	default:
		return tcp.NewListener(cfg.Addr())
	}
}
