package host

import (
	"context"
	"fmt"
	"strings"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// OSType identifies the operating system family of a host.
type OSType string

const (
	Unknown     OSType = ""
	Linux       OSType = "Linux"
	LinuxUbuntu OSType = "Linux_Ubuntu"
	LinuxDebian OSType = "Linux_Debian"
	LinuxFedora OSType = "Linux_Fedora"
	LinuxRedHat OSType = "Linux_RedHat"
	LinuxCentOS OSType = "Linux_CentOS"
	LinuxAlpine OSType = "Linux_Alpine"
	Darwin      OSType = "Darwin"
)

// DetermineOS asks the host itself what it runs. The probes go through
// the command manager so detection works over SSH exactly as it does
// locally.
func DetermineOS(ctx context.Context, mgr cm.CommandManager) (OSType, error) {
	result, err := mgr.Run(ctx, cm.CommandConfig{Command: "uname", Args: []string{"-s"}})
	if err != nil {
		return Unknown, fmt.Errorf("could not determine OS: %w", err)
	}

	switch kernel := strings.TrimSpace(result.STDOUT); kernel {
	case "Darwin":
		return Darwin, nil
	case "Linux":
		return determineLinuxDistro(ctx, mgr), nil
	default:
		return Unknown, fmt.Errorf("unsupported operating system: %s", kernel)
	}
}

// determineLinuxDistro narrows a Linux host down to a distro family via
// /etc/os-release. An unreadable or unrecognized file degrades to the
// generic Linux type; the factory then probes for a package manager.
func determineLinuxDistro(ctx context.Context, mgr cm.CommandManager) OSType {
	result, err := mgr.Run(ctx, cm.CommandConfig{Command: "cat", Args: []string{"/etc/os-release"}})
	if err != nil {
		return Linux
	}

	id, idLike := parseOSRelease(result.STDOUT)

	switch id {
	case "ubuntu":
		return LinuxUbuntu
	case "debian":
		return LinuxDebian
	case "fedora":
		return LinuxFedora
	case "rhel", "redhat":
		return LinuxRedHat
	case "centos":
		return LinuxCentOS
	case "alpine":
		return LinuxAlpine
	}

	switch {
	case strings.Contains(idLike, "debian"), strings.Contains(idLike, "ubuntu"):
		return LinuxDebian
	case strings.Contains(idLike, "fedora"):
		return LinuxFedora
	case strings.Contains(idLike, "rhel"), strings.Contains(idLike, "centos"):
		return LinuxRedHat
	}

	return Linux
}

// parseOSRelease pulls the ID and ID_LIKE keys out of os-release text.
func parseOSRelease(content string) (id, idLike string) {
	for _, line := range strings.Split(content, "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.ToLower(strings.Trim(strings.TrimSpace(value), `"`))
		switch strings.TrimSpace(key) {
		case "ID":
			id = value
		case "ID_LIKE":
			idLike = value
		}
	}
	return id, idLike
}
