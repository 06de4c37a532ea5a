// Package shared holds the flags common to the serve and attach commands.
package shared

import "github.com/urfave/cli/v3"

// Flag names shared across subcommands.
const (
	HostFlag    = "host"
	PortFlag    = "port"
	ProtoFlag   = "proto"
	VerboseFlag = "verbose"
)

// GetFlags returns the flags every remote-mode command takes.
func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  ProtoFlag,
			Value: "tcp",
			Usage: "Transport: tcp, ws or udp",
		},
		&cli.BoolFlag{
			Name:    VerboseFlag,
			Aliases: []string{"v"},
			Usage:   "Verbose output",
		},
	}
}
