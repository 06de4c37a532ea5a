package version

import (
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

func TestGetCommand(t *testing.T) {
	t.Parallel()

	cmd := GetCommand()
	if cmd == nil {
		t.Fatal("GetCommand() returned nil")
	}

	if cmd.Name != "version" {
		t.Errorf("command name = %q, want %q", cmd.Name, "version")
	}
	if cmd.Usage == "" {
		t.Error("command usage should not be empty")
	}
	if cmd.Action == nil {
		t.Fatal("command action should not be nil")
	}
}

func TestVersionCommandExecute(t *testing.T) {
	cmd := GetCommand()

	origVersion := Version
	defer func() { Version = origVersion }()
	Version = "v1.2.3"

	if err := cmd.Action(context.Background(), &cli.Command{}); err != nil {
		t.Errorf("Action() error = %v", err)
	}
}

func TestVersionDefaultValue(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should have a default value")
	}
}
