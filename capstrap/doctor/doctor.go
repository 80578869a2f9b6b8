// Package doctor reports whether a host is ready to run the capture
// suite. It only diagnoses; the bootstrap is the repair path.
package doctor

import (
	"context"
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// Check is one readiness probe outcome.
type Check struct {
	Name   string
	Detail string
	OK     bool
	// Optional checks inform the operator without failing the host.
	Optional bool
}

var (
	// requiredTools must answer on PATH for the suite to run at all.
	requiredTools = []string{"python3", "tshark"}
	// extraTools improve captures but the suite can run without them.
	extraTools = []string{"tcpdump", "dumpcap"}
	// pythonModules are imported by the suite on startup.
	pythonModules = []string{"scapy", "rich", "manuf", "cryptography", "dpkt", "requests"}
)

// Doctor probes a host through its command manager, so the same checks
// run locally and over SSH.
type Doctor struct {
	CommandManager cm.CommandManager
	// PcapVersion reports the linked packet-capture library when the
	// target is the invoking machine. Nil skips the check.
	PcapVersion func() string
}

// Diagnose runs every readiness probe and returns all outcomes. The
// returned error aggregates the failed required checks and is nil when
// the host can run the suite.
func (d *Doctor) Diagnose(ctx context.Context) ([]Check, error) {
	var checks []Check
	var result *multierror.Error

	record := func(c Check) {
		checks = append(checks, c)
		if !c.OK && !c.Optional {
			result = multierror.Append(result, fmt.Errorf("%s: %s", c.Name, c.Detail))
		}
	}

	for _, tool := range requiredTools {
		record(d.binaryCheck(ctx, tool, false))
	}
	for _, tool := range extraTools {
		record(d.binaryCheck(ctx, tool, true))
	}

	record(d.pipCheck(ctx))

	if d.PcapVersion != nil {
		record(Check{Name: "libpcap", Detail: d.PcapVersion(), OK: true, Optional: true})
	}

	for _, module := range pythonModules {
		record(d.moduleCheck(ctx, module))
	}

	return checks, result.ErrorOrNil()
}

func (d *Doctor) binaryCheck(ctx context.Context, name string, optional bool) Check {
	result, err := d.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "sh",
		Args:    []string{"-c", "command -v " + name},
	})

	path := strings.TrimSpace(result.STDOUT)
	if err != nil || path == "" {
		return Check{Name: name, Detail: "not found on PATH", Optional: optional}
	}
	return Check{Name: name, Detail: path, OK: true, Optional: optional}
}

func (d *Doctor) pipCheck(ctx context.Context) Check {
	result, err := d.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "python3",
		Args:    []string{"-m", "pip", "--version"},
	})

	if err != nil {
		return Check{Name: "pip", Detail: "python3 -m pip does not answer"}
	}
	detail := strings.TrimSpace(result.STDOUT)
	if i := strings.IndexByte(detail, '\n'); i >= 0 {
		detail = detail[:i]
	}
	return Check{Name: "pip", Detail: detail, OK: true}
}

func (d *Doctor) moduleCheck(ctx context.Context, module string) Check {
	name := "python-" + module
	_, err := d.CommandManager.Run(ctx, cm.CommandConfig{
		Command: "python3",
		Args:    []string{"-c", "import " + module},
	})

	if err != nil {
		return Check{Name: name, Detail: "import failed"}
	}
	return Check{Name: name, Detail: "importable", OK: true}
}
