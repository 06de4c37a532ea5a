//go:build linux || darwin
// +build linux darwin

package pty

import (
	"fmt"

	"ttybridge/pkg/fd"
	"ttybridge/pkg/termios"
)

// Pty is an allocated pseudo-terminal pair. Master and slave have
// independent ownership once the struct is taken apart.
type Pty struct {
	Master *fd.Fd
	Slave  *fd.Fd
	Path   string // slave device path, e.g. /dev/pts/4
}

// Open allocates a new pty pair. If attr or size are non-nil they are
// applied to the slave before returning, so a process spawned on it inherits
// the template terminal's configuration. Any step failing releases the
// resources opened so far.
func Open(attr *termios.State, size *Size) (*Pty, error) {
	master, err := openMaster()
	if err != nil {
		return nil, fmt.Errorf("openMaster(): %s", err)
	}

	path, err := slavePath(master)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("slavePath(master): %s", err)
	}

	if err := grant(master); err != nil {
		master.Close()
		return nil, fmt.Errorf("grantpt(master): %s", err)
	}

	if err := unlock(master); err != nil {
		master.Close()
		return nil, fmt.Errorf("unlockpt(master): %s", err)
	}

	slave, err := openSlave(path)
	if err != nil {
		master.Close()
		return nil, fmt.Errorf("openSlave(%s): %s", path, err)
	}

	if attr != nil {
		if err := termios.Apply(slave.Raw(), attr); err != nil {
			slave.Close()
			master.Close()
			return nil, fmt.Errorf("applying template termios: %s", err)
		}
	}

	if size != nil {
		if err := SetSize(slave.Raw(), *size); err != nil {
			slave.Close()
			master.Close()
			return nil, fmt.Errorf("applying template size: %s", err)
		}
	}

	return &Pty{
		Master: master,
		Slave:  slave,
		Path:   path,
	}, nil
}
