package packagemanager

import (
	"context"
	"io"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// YumPackageManager drives yum on older RHEL-family systems.
type YumPackageManager struct {
	CommandManager cm.CommandManager
	Sudo           bool
	Stdout         io.Writer
	Stderr         io.Writer
}

func (ypm *YumPackageManager) Name() string {
	return "yum"
}

func (ypm *YumPackageManager) IsAvailable(ctx context.Context) bool {
	return binaryOnPath(ctx, ypm.CommandManager, "yum")
}

func (ypm *YumPackageManager) RefreshIndex(ctx context.Context) (cm.CommandResult, error) {
	return ypm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "yum",
		Sudo:    ypm.Sudo,
		Args:    []string{"makecache", "-y", "-q"},
		Stdout:  ypm.Stdout,
		Stderr:  ypm.Stderr,
	})
}

func (ypm *YumPackageManager) Install(ctx context.Context, pkgs ...string) (cm.CommandResult, error) {
	args := append([]string{"install", "-y", "-q"}, pkgs...)

	return ypm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "yum",
		Sudo:    ypm.Sudo,
		Args:    args,
		Stdout:  ypm.Stdout,
		Stderr:  ypm.Stderr,
	})
}
