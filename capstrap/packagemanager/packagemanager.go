// Package packagemanager wraps the native software-installation tools of
// the supported platforms behind one interface. Every operation is quiet
// and non-interactive; the capture bootstrap must never block on a prompt.
package packagemanager

import (
	"context"
	"strings"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

type PackageManager interface {
	// Name identifies the underlying tool ("apt", "dnf", ...).
	Name() string

	// IsAvailable reports whether the tool exists on the target host.
	IsAvailable(ctx context.Context) bool

	// RefreshIndex updates the package metadata index.
	RefreshIndex(ctx context.Context) (cm.CommandResult, error)

	// Install installs the given packages in one invocation.
	Install(ctx context.Context, pkgs ...string) (cm.CommandResult, error)
}

// binaryOnPath probes for a binary through the command manager so the
// check works over SSH as well as locally.
func binaryOnPath(ctx context.Context, mgr cm.CommandManager, binary string) bool {
	result, err := mgr.Run(ctx, cm.CommandConfig{
		Command: "sh",
		Args:    []string{"-c", "command -v " + binary},
	})
	return err == nil && strings.TrimSpace(result.STDOUT) != ""
}
