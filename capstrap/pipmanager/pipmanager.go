// Package pipmanager installs Python libraries through pip. The capture
// tooling depends on packages that ship outside the OS repositories, so
// pip runs after the native package manager has put python3 in place.
package pipmanager

import (
	"context"
	"io"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// PipManager installs Python packages on a host.
type PipManager interface {
	// Install installs the given packages in one invocation.
	Install(ctx context.Context, pkgs ...string) (cm.CommandResult, error)
}

// UnixPipManager invokes pip as a module of the system python3 so the
// packages land in the interpreter the capture tooling runs under.
type UnixPipManager struct {
	CommandManager cm.CommandManager
	// Sudo is set when the command manager's identity is not root.
	Sudo bool
	// Stdout/Stderr stream pip's own output to the operator.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs pip quietly. Recent distributions mark the system
// interpreter as externally managed, so the override flag is required
// for the packages to install at all.
func (upm *UnixPipManager) Install(ctx context.Context, pkgs ...string) (cm.CommandResult, error) {
	args := []string{"-m", "pip", "install", "--break-system-packages", "-q"}
	args = append(args, pkgs...)

	return upm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "python3",
		Sudo:    upm.Sudo,
		Args:    args,
		Stdout:  upm.Stdout,
		Stderr:  upm.Stderr,
	})
}
