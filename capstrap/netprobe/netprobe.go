// Package netprobe exercises the freshly installed capture stack by
// enumerating devices through the same packet-capture library the suite
// binds against.
package netprobe

import (
	"fmt"
	"io"

	"github.com/google/gopacket/pcap"
)

// Interface describes one capture-capable device.
type Interface struct {
	Name        string
	Description string
	Addresses   []string
}

// Interfaces lists the devices libpcap can see on the invoking machine.
// Enumerating everything usually needs root, which the bootstrap already
// guarantees.
func Interfaces() ([]Interface, error) {
	devices, err := pcap.FindAllDevs()
	if err != nil {
		return nil, fmt.Errorf("could not enumerate capture interfaces: %w", err)
	}

	ifaces := make([]Interface, 0, len(devices))
	for _, device := range devices {
		iface := Interface{Name: device.Name, Description: device.Description}
		for _, address := range device.Addresses {
			iface.Addresses = append(iface.Addresses, address.IP.String())
		}
		ifaces = append(ifaces, iface)
	}
	return ifaces, nil
}

// LibraryVersion reports the libpcap build the bindings linked against.
func LibraryVersion() string {
	return pcap.Version()
}

// WriteInterfaces renders the device list the way the suite's own
// interface picker presents it.
func WriteInterfaces(w io.Writer, ifaces []Interface) {
	if len(ifaces) == 0 {
		fmt.Fprintln(w, "No capture interfaces found.")
		return
	}

	fmt.Fprintln(w, "Available capture interfaces:")
	for i, iface := range ifaces {
		fmt.Fprintf(w, "%d. %s\n", i+1, iface.Name)
		if iface.Description != "" {
			fmt.Fprintf(w, "   Description: %s\n", iface.Description)
		}
		for _, addr := range iface.Addresses {
			fmt.Fprintf(w, "   - IP address: %s\n", addr)
		}
	}
}
