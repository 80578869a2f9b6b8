package packagemanager

import (
	"context"
	"io"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// DnfPackageManager drives dnf on Fedora-family systems.
type DnfPackageManager struct {
	CommandManager cm.CommandManager
	Sudo           bool
	Stdout         io.Writer
	Stderr         io.Writer
}

func (dpm *DnfPackageManager) Name() string {
	return "dnf"
}

func (dpm *DnfPackageManager) IsAvailable(ctx context.Context) bool {
	return binaryOnPath(ctx, dpm.CommandManager, "dnf")
}

func (dpm *DnfPackageManager) RefreshIndex(ctx context.Context) (cm.CommandResult, error) {
	return dpm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "dnf",
		Sudo:    dpm.Sudo,
		Args:    []string{"makecache", "--refresh", "-y", "-q"},
		Stdout:  dpm.Stdout,
		Stderr:  dpm.Stderr,
	})
}

func (dpm *DnfPackageManager) Install(ctx context.Context, pkgs ...string) (cm.CommandResult, error) {
	args := append([]string{"install", "-y", "-q"}, pkgs...)

	return dpm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "dnf",
		Sudo:    dpm.Sudo,
		Args:    args,
		Stdout:  dpm.Stdout,
		Stderr:  dpm.Stderr,
	})
}
