//go:build linux || darwin
// +build linux darwin

// Package attach implements the client side of the remote mode: dial a
// serving instance and bind the local terminal to its pty session.
package attach

import (
	"context"
	"fmt"
	"net"

	"ttybridge/cmd/shared"
	"ttybridge/pkg/config"
	"ttybridge/pkg/log"
	"ttybridge/pkg/remote"
	"ttybridge/pkg/transport/tcp"
	"ttybridge/pkg/transport/udp"
	"ttybridge/pkg/transport/ws"

	"github.com/urfave/cli/v3"
)

// GetCommand returns the attach subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "attach",
		Usage: "Attach this terminal to a remote pty session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			proto, err := config.ParseProto(cmd.String(shared.ProtoFlag))
			if err != nil {
				return err
			}

			cfg := &config.Config{
				Host:    cmd.String(shared.HostFlag),
				Port:    int(cmd.Int(shared.PortFlag)),
				Proto:   proto,
				Verbose: cmd.Bool(shared.VerboseFlag),
			}

			if errs := cfg.Validate(); len(errs) > 0 {
				log.ErrorMsg("Argument validation errors:\n")
				for _, err := range errs {
					log.ErrorMsg(" - %s\n", err)
				}
				return fmt.Errorf("exiting")
			}

			log.InfoMsg("Connecting to %s (%s)\n", cfg.Addr(), cfg.Proto)

			conn, err := dial(ctx, cfg)
			if err != nil {
				return fmt.Errorf("dialing %s (%s): %s", cfg.Addr(), cfg.Proto, err)
			}
			defer conn.Close()

			return remote.Attach(ctx, conn, cfg.Verbose)
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     shared.HostFlag,
				Usage:    "Remote host (name or IP)",
				Required: true,
			},
			&cli.IntFlag{
				Name:     shared.PortFlag,
				Aliases:  []string{"p"},
				Usage:    "Remote port",
				Required: true,
			},
		}, shared.GetFlags()...),
	}
}

func dial(ctx context.Context, cfg *config.Config) (net.Conn, error) {
	switch cfg.Proto {
	case config.ProtoWS:
		return ws.NewDialer(cfg.Addr()).Dial(ctx)
	case config.ProtoUDP:
		d, err := udp.NewDialer(cfg.Addr())
		if err != nil {
			return nil, err
		}
		return d.Dial()
	default:
		d, err := tcp.NewDialer(cfg.Addr())
		if err != nil {
			return nil, err
		}
		return d.Dial()
	}
}
