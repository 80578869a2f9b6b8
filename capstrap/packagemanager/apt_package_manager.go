package packagemanager

import (
	"context"
	"io"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// AptPackageManager drives apt-get on Debian-family systems.
type AptPackageManager struct {
	CommandManager cm.CommandManager
	// Sudo is set when the command manager's identity is not root.
	Sudo bool
	// Stdout/Stderr stream the tool's own output to the operator.
	Stdout io.Writer
	Stderr io.Writer
}

func (apm *AptPackageManager) Name() string {
	return "apt"
}

func (apm *AptPackageManager) IsAvailable(ctx context.Context) bool {
	return binaryOnPath(ctx, apm.CommandManager, "apt-get")
}

func (apm *AptPackageManager) RefreshIndex(ctx context.Context) (cm.CommandResult, error) {
	return apm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "apt-get",
		Sudo:    apm.Sudo,
		Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		Args:    []string{"update", "-qq"},
		Stdout:  apm.Stdout,
		Stderr:  apm.Stderr,
	})
}

func (apm *AptPackageManager) Install(ctx context.Context, pkgs ...string) (cm.CommandResult, error) {
	args := []string{
		"install", "-y", "-qq",
		"-o", "Dpkg::Options::=--force-confdef",
		"-o", "Dpkg::Options::=--force-confold",
	}
	args = append(args, pkgs...)

	return apm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "apt-get",
		Sudo:    apm.Sudo,
		Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		Args:    args,
		Stdout:  apm.Stdout,
		Stderr:  apm.Stderr,
	})
}
