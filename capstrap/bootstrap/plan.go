package bootstrap

import (
	"context"
	"fmt"
	"strings"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
	"github.com/netcapops/capstrap/capstrap/host"
)

// BuildPlan lays out the provisioning sequence for one host. The order
// is fixed: index refresh, system packages, Python packages.
func BuildPlan(h *host.Host) []Step {
	mgr := h.PackageManager
	pip := h.PipManager
	system := SystemPackages(mgr.Name())
	python := PythonPackages()

	return []Step{
		{
			Name:        "index-refresh",
			Description: fmt.Sprintf("Refreshing %s package index", mgr.Name()),
			OnFailure:   AbortOnError,
			Run: func(ctx context.Context) (cm.CommandResult, error) {
				return mgr.RefreshIndex(ctx)
			},
		},
		{
			Name:        "system-packages",
			Description: "Installing system packages: " + strings.Join(system, ", "),
			// Some of these packages are missing or renamed on certain
			// releases; a partial install must not sink the run.
			OnFailure: ContinueOnError,
			Run: func(ctx context.Context) (cm.CommandResult, error) {
				return mgr.Install(ctx, system...)
			},
		},
		{
			Name:        "python-packages",
			Description: "Installing Python packages: " + strings.Join(python, ", "),
			OnFailure:   AbortOnError,
			Run: func(ctx context.Context) (cm.CommandResult, error) {
				return pip.Install(ctx, python...)
			},
		},
	}
}
