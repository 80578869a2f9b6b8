package packagemanager

import (
	"context"
	"io"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// ApkPackageManager drives apk on Alpine systems.
type ApkPackageManager struct {
	CommandManager cm.CommandManager
	Sudo           bool
	Stdout         io.Writer
	Stderr         io.Writer
}

func (apm *ApkPackageManager) Name() string {
	return "apk"
}

func (apm *ApkPackageManager) IsAvailable(ctx context.Context) bool {
	return binaryOnPath(ctx, apm.CommandManager, "apk")
}

func (apm *ApkPackageManager) RefreshIndex(ctx context.Context) (cm.CommandResult, error) {
	return apm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "apk",
		Sudo:    apm.Sudo,
		Args:    []string{"update", "-q"},
		Stdout:  apm.Stdout,
		Stderr:  apm.Stderr,
	})
}

func (apm *ApkPackageManager) Install(ctx context.Context, pkgs ...string) (cm.CommandResult, error) {
	args := append([]string{"add", "-q"}, pkgs...)

	return apm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "apk",
		Sudo:    apm.Sudo,
		Args:    args,
		Stdout:  apm.Stdout,
		Stderr:  apm.Stderr,
	})
}
