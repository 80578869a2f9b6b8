// Package privilege gates operations that need root. Capture tooling
// installs system packages and opens raw sockets, neither of which an
// unprivileged process can do.
package privilege

import (
	"fmt"
	"os"
)

// Error reports a failed privilege check.
type Error struct {
	// EUID is the effective user id the process ran under.
	EUID int
}

func (e *Error) Error() string {
	return fmt.Sprintf("root privileges required, running as uid %d", e.EUID)
}

// Checker verifies the identity of the current process.
type Checker struct {
	// EUID reports the effective user id. Defaults to os.Geteuid.
	EUID func() int
}

func (c *Checker) euid() int {
	if c.EUID != nil {
		return c.EUID()
	}
	return os.Geteuid()
}

// RequireRoot returns an *Error unless the process runs with euid 0.
func (c *Checker) RequireRoot() error {
	if id := c.euid(); id != 0 {
		return &Error{EUID: id}
	}
	return nil
}
