package host

import (
	"io"

	"github.com/netcapops/capstrap/capstrap/commandmanager"
	"github.com/netcapops/capstrap/capstrap/packagemanager"
	"github.com/netcapops/capstrap/capstrap/pipmanager"
)

type HostOption func(*Host)

// WithUser returns a HostOption that sets the SSH user for a Host.
func WithUser(user string) HostOption {
	return func(host *Host) {
		host.User = user
	}
}

// WithPassword returns a HostOption that sets the SSH password for a Host.
func WithPassword(password string) HostOption {
	return func(host *Host) {
		host.Password = password
	}
}

// WithKeyPassphrase returns a HostOption that sets the key passphrase for a Host.
func WithKeyPassphrase(keyPassphrase string) HostOption {
	return func(host *Host) {
		host.KeyPassphrase = keyPassphrase
	}
}

// WithSudoPassword returns a HostOption that sets the sudo password for a Host.
func WithSudoPassword(password string) HostOption {
	return func(host *Host) {
		host.SudoPassword = password
	}
}

// WithPort returns a HostOption that sets the SSH port for a Host.
func WithPort(port string) HostOption {
	return func(host *Host) {
		host.Port = port
	}
}

// WithOS returns a HostOption that pins the OS for a Host, skipping detection.
func WithOS(os OSType) HostOption {
	return func(host *Host) {
		host.OSType = os
	}
}

// WithCommandManager returns a HostOption that injects a command manager.
func WithCommandManager(mgr commandmanager.CommandManager) HostOption {
	return func(host *Host) {
		host.CommandManager = mgr
	}
}

// WithPackageManager returns a HostOption that injects a package manager.
func WithPackageManager(mgr packagemanager.PackageManager) HostOption {
	return func(host *Host) {
		host.PackageManager = mgr
	}
}

// WithPipManager returns a HostOption that injects a pip manager.
func WithPipManager(mgr pipmanager.PipManager) HostOption {
	return func(host *Host) {
		host.PipManager = mgr
	}
}

// WithOutput returns a HostOption that routes tool output to the given writers.
func WithOutput(stdout, stderr io.Writer) HostOption {
	return func(host *Host) {
		host.Stdout = stdout
		host.Stderr = stderr
	}
}
