package packagemanager

import (
	"context"
	"io"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// BrewPackageManager drives Homebrew on macOS hosts. Homebrew refuses to
// run as root, so this manager never sets Sudo on its commands.
type BrewPackageManager struct {
	CommandManager cm.CommandManager
	Stdout         io.Writer
	Stderr         io.Writer
}

func (bpm *BrewPackageManager) Name() string {
	return "brew"
}

func (bpm *BrewPackageManager) IsAvailable(ctx context.Context) bool {
	return binaryOnPath(ctx, bpm.CommandManager, "brew")
}

func (bpm *BrewPackageManager) RefreshIndex(ctx context.Context) (cm.CommandResult, error) {
	return bpm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "brew",
		Args:    []string{"update", "--quiet"},
		Stdout:  bpm.Stdout,
		Stderr:  bpm.Stderr,
	})
}

func (bpm *BrewPackageManager) Install(ctx context.Context, pkgs ...string) (cm.CommandResult, error) {
	args := append([]string{"install", "--quiet"}, pkgs...)

	return bpm.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "brew",
		Args:    args,
		Env:     []string{"HOMEBREW_NO_AUTO_UPDATE=1"},
		Stdout:  bpm.Stdout,
		Stderr:  bpm.Stderr,
	})
}
