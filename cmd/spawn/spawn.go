//go:build linux || darwin
// +build linux darwin

// Package spawn implements the local mode: allocate a pty configured like
// the calling terminal, run a program on it and proxy the caller's stdio to
// it until the program exits.
package spawn

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"ttybridge/pkg/fd"
	"ttybridge/pkg/log"
	"ttybridge/pkg/tty"

	"github.com/urfave/cli/v3"
	"golang.org/x/sys/unix"
)

const execFlag = "exec"
const verboseFlag = "verbose"

// GetCommand returns the spawn subcommand.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "spawn",
		Usage: "Run a program on a new pty bound to this terminal",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(cmd.String(execFlag), cmd.Bool(verboseFlag))
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    execFlag,
				Aliases: []string{"e"},
				Usage:   "Program to run (defaults to $SHELL)",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "Verbose output",
			},
		},
	}
}

func run(program string, verbose bool) error {
	if program == "" {
		program = os.Getenv("SHELL")
	}
	if program == "" {
		program = "/bin/sh"
	}

	stdin := fd.New(int(os.Stdin.Fd()), false)

	srv, err := tty.NewServer(stdin)
	if err != nil {
		return fmt.Errorf("tty.NewServer(stdin): %s", err)
	}
	defer srv.Close()

	log.VerboseMsg(verbose, "Got pty %s\n", srv.Path())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)
	defer signal.Stop(sigCh)

	client, err := srv.NewClient(stdin, sigCh)
	if err != nil {
		return fmt.Errorf("srv.NewClient(stdin): %s", err)
	}
	defer client.Close()

	child := exec.Command(program)
	if err := srv.Spawn(child); err != nil {
		return fmt.Errorf("srv.Spawn(%s): %s", program, err)
	}

	client.Wait()
	client.Close()

	child.Wait()
	return exitStatus(child)
}

// exitStatus maps a finished child's exit code onto the process exit code,
// as a sentinel the CLI layer turns into os.Exit only after the deferred
// cleanup has run.
func exitStatus(cmd *exec.Cmd) error {
	if code := cmd.ProcessState.ExitCode(); code > 0 {
		return cli.Exit("", code)
	}
	return nil
}
