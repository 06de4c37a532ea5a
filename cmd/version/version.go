// Package version prints the build version, injected at link time.
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// Version is set via -ldflags at build time.
var Version = "unknown"

// GetCommand returns the version subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Program version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println(Version)
			return nil
		},
		Flags: []cli.Flag{},
	}
}
