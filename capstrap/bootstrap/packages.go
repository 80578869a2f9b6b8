package bootstrap

// SystemPackages returns the native capture-stack packages for the given
// package manager: the Python runtime and pip, the packet-capture
// development library, the CLI dissector, and the shared dissector data.
// Names differ per distribution family.
func SystemPackages(manager string) []string {
	switch manager {
	case "apt":
		return []string{"python3", "python3-pip", "libpcap-dev", "tshark", "wireshark-common"}
	case "dnf":
		return []string{"python3", "python3-pip", "libpcap-devel", "wireshark-cli"}
	case "yum":
		return []string{"python3", "python3-pip", "libpcap-devel", "wireshark"}
	case "apk":
		return []string{"python3", "py3-pip", "libpcap-dev", "tshark"}
	case "brew":
		return []string{"python3", "libpcap", "wireshark"}
	}
	return nil
}

// PythonPackages returns the third-party libraries the capture suite
// imports: packet manipulation, terminal rendering, MAC-vendor lookup,
// cryptography, packet parsing, and the HTTP client.
func PythonPackages() []string {
	return []string{"scapy", "rich", "manuf", "cryptography", "dpkt", "requests"}
}
