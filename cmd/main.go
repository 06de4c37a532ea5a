package main

import (
	"context"
	"errors"
	"os"

	"ttybridge/cmd/attach"
	"ttybridge/cmd/serve"
	"ttybridge/cmd/spawn"
	"ttybridge/cmd/version"
	"ttybridge/pkg/log"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "ttybridge",
		Usage: "run programs on a pseudo-terminal, locally or over the network",
		Commands: []*cli.Command{
			spawn.GetCommand(),
			serve.GetCommand(),
			attach.GetCommand(),
			version.GetCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		// Exit-code carriers (e.g. a spawned program's non-zero exit)
		// propagate the code without the error banner.
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			if msg := ec.Error(); msg != "" {
				log.ErrorMsg("%s\n", msg)
			}
			os.Exit(ec.ExitCode())
		}

		log.ErrorMsg("%s\n", err)
		os.Exit(1)
	}
}
