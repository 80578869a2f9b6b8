package host

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/netcapops/capstrap/capstrap/commandmanager"
	"github.com/netcapops/capstrap/capstrap/packagemanager"
	"github.com/netcapops/capstrap/capstrap/pipmanager"
	"github.com/netcapops/capstrap/capstrap/sshmanager"
)

// NewHost builds a Host for the given hostname, detects its OS, and
// wires up the package tooling that OS answers to. An empty hostname
// (or a loopback name) targets the invoking machine.
func NewHost(hostname string, options ...HostOption) (*Host, error) {
	h := &Host{
		Hostname: hostname,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}

	for _, option := range options {
		option(h)
	}

	if h.User == "" {
		if current, err := user.Current(); err == nil {
			h.User = current.Username
		}
	}

	if h.CommandManager == nil {
		h.CommandManager = &commandmanager.UnixCommandManager{
			Hostname:    hostname,
			Port:        h.Port,
			SSHClient:   &sshmanager.RealSSHClient{},
			SSHConfig:   &sshmanager.Configurer{},
			Credentials: h.Credentials,
		}
	}

	ctx := context.TODO()

	if h.OSType == Unknown {
		osType, err := DetermineOS(ctx, h.CommandManager)
		if err != nil {
			return nil, err
		}
		h.OSType = osType
	}

	if h.PackageManager == nil {
		h.PackageManager = packageManagerFor(h)
	}
	if h.PackageManager == nil {
		h.PackageManager = probePackageManager(ctx, h)
	}
	if h.PackageManager == nil {
		return nil, fmt.Errorf("no supported package manager found on %s", h.DisplayName())
	}

	if h.PipManager == nil {
		h.PipManager = &pipmanager.UnixPipManager{
			CommandManager: h.CommandManager,
			Sudo:           h.needsSudo(),
			Stdout:         h.Stdout,
			Stderr:         h.Stderr,
		}
	}

	return h, nil
}

// packageManagerFor maps a detected OS type straight to its manager.
// Returns nil for types with no fixed mapping.
func packageManagerFor(h *Host) packagemanager.PackageManager {
	sudo := h.needsSudo()

	switch h.OSType {
	case LinuxUbuntu, LinuxDebian:
		return &packagemanager.AptPackageManager{CommandManager: h.CommandManager, Sudo: sudo, Stdout: h.Stdout, Stderr: h.Stderr}
	case LinuxFedora:
		return &packagemanager.DnfPackageManager{CommandManager: h.CommandManager, Sudo: sudo, Stdout: h.Stdout, Stderr: h.Stderr}
	case LinuxRedHat, LinuxCentOS:
		return &packagemanager.YumPackageManager{CommandManager: h.CommandManager, Sudo: sudo, Stdout: h.Stdout, Stderr: h.Stderr}
	case LinuxAlpine:
		return &packagemanager.ApkPackageManager{CommandManager: h.CommandManager, Sudo: sudo, Stdout: h.Stdout, Stderr: h.Stderr}
	case Darwin:
		return &packagemanager.BrewPackageManager{CommandManager: h.CommandManager, Stdout: h.Stdout, Stderr: h.Stderr}
	}

	return nil
}

// probePackageManager asks the host which known manager it carries and
// keeps the first that answers. Covers distros os-release does not name.
func probePackageManager(ctx context.Context, h *Host) packagemanager.PackageManager {
	sudo := h.needsSudo()

	candidates := []packagemanager.PackageManager{
		&packagemanager.AptPackageManager{CommandManager: h.CommandManager, Sudo: sudo, Stdout: h.Stdout, Stderr: h.Stderr},
		&packagemanager.DnfPackageManager{CommandManager: h.CommandManager, Sudo: sudo, Stdout: h.Stdout, Stderr: h.Stderr},
		&packagemanager.YumPackageManager{CommandManager: h.CommandManager, Sudo: sudo, Stdout: h.Stdout, Stderr: h.Stderr},
		&packagemanager.ApkPackageManager{CommandManager: h.CommandManager, Sudo: sudo, Stdout: h.Stdout, Stderr: h.Stderr},
		&packagemanager.BrewPackageManager{CommandManager: h.CommandManager, Stdout: h.Stdout, Stderr: h.Stderr},
	}

	for _, candidate := range candidates {
		if candidate.IsAvailable(ctx) {
			return candidate
		}
	}

	return nil
}
