// Package host assembles the per-machine managers the bootstrap drives.
// A Host knows how to reach a machine (locally or over SSH) and which
// package tooling that machine answers to.
package host

import (
	"io"
	"os"

	"github.com/netcapops/capstrap/capstrap/common"
	"github.com/netcapops/capstrap/capstrap/commandmanager"
	"github.com/netcapops/capstrap/capstrap/packagemanager"
	"github.com/netcapops/capstrap/capstrap/pipmanager"
)

// Host is one bootstrap target with its managers wired up.
type Host struct {
	Hostname string
	Port     string
	OSType   OSType
	common.Credentials

	CommandManager commandmanager.CommandManager
	PackageManager packagemanager.PackageManager
	PipManager     pipmanager.PipManager

	// Stdout/Stderr receive the invoked tools' own output.
	Stdout io.Writer
	Stderr io.Writer
}

// DisplayName names the host in operator output.
func (h *Host) DisplayName() string {
	if h.Hostname == "" {
		return "localhost"
	}
	return h.Hostname
}

// IsLocal reports whether this host is the invoking machine.
func (h *Host) IsLocal() bool {
	switch h.Hostname {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// needsSudo reports whether privileged commands must run under sudo.
// Local runs inherit the process identity; remote runs depend on the
// SSH user.
func (h *Host) needsSudo() bool {
	if h.IsLocal() {
		return os.Geteuid() != 0
	}
	return h.User != "root"
}
