package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"

	"github.com/netcapops/capstrap/capstrap/bootstrap"
	"github.com/netcapops/capstrap/capstrap/config"
	"github.com/netcapops/capstrap/capstrap/console"
	"github.com/netcapops/capstrap/capstrap/host"
	"github.com/netcapops/capstrap/capstrap/privilege"
)

func TestRunRefusesNonRoot(t *testing.T) {
	orig := rootChecker
	rootChecker = &privilege.Checker{EUID: func() int { return 1000 }}
	defer func() { rootChecker = orig }()

	var buf bytes.Buffer
	f := &flags{ConfigPath: filepath.Join(t.TempDir(), "absent.ini")}

	code := run(f, &console.Console{Out: &buf})

	assert.Equal(t, 1, code)
	// The remediation line is the entire stdout; nothing past the gate ran.
	assert.Equal(t, "[!] capstrap requires root. Run: sudo capstrap\n", buf.String())
}

func TestNeedsRoot(t *testing.T) {
	// The default invocation provisions this machine.
	assert.True(t, needsRoot(&flags{}, nil))

	// Loopback names are still this machine.
	assert.True(t, needsRoot(&flags{}, []string{"127.0.0.1"}))
	assert.True(t, needsRoot(&flags{}, []string{"sensor-1", "localhost"}))

	// Remote-only fleets elevate on the far side via sudo.
	assert.False(t, needsRoot(&flags{}, []string{"sensor-1", "sensor-2"}))

	// Read-only modes never need the gate.
	assert.False(t, needsRoot(&flags{DryRun: true}, nil))
	assert.False(t, needsRoot(&flags{Doctor: true}, nil))
}

func TestExitCodeFor(t *testing.T) {
	stepErr := &bootstrap.StepError{Step: "index-refresh", ExitCode: 100, Err: errors.New("exit status 100")}

	// Wrapped the way a fleet run delivers it.
	var merr *multierror.Error
	merr = multierror.Append(merr, fmt.Errorf("host localhost: %w", stepErr))

	assert.Equal(t, 100, exitCodeFor(merr))
	assert.Equal(t, 100, exitCodeFor(stepErr))

	// Errors without a usable exit code map to 1.
	assert.Equal(t, 1, exitCodeFor(errors.New("dial tcp: connection refused")))
	assert.Equal(t, 1, exitCodeFor(&bootstrap.StepError{ExitCode: -1, Err: errors.New("signal: killed")}))
}

func TestBuildHostOptionsPrecedence(t *testing.T) {
	cfg := config.Config{SSHUser: "filewins", SSHPort: "2200"}

	// Flag values shadow file values.
	h := &host.Host{}
	for _, opt := range buildHostOptions(&flags{Username: "flagwins", Port: "22"}, cfg, "", "", "") {
		opt(h)
	}
	assert.Equal(t, "flagwins", h.User)
	assert.Equal(t, "22", h.Port)

	// File values apply when no flag is set.
	h = &host.Host{}
	for _, opt := range buildHostOptions(&flags{}, cfg, "pw", "kp", "sp") {
		opt(h)
	}
	assert.Equal(t, "filewins", h.User)
	assert.Equal(t, "2200", h.Port)
	assert.Equal(t, "pw", h.Password)
	assert.Equal(t, "kp", h.KeyPassphrase)
	assert.Equal(t, "sp", h.SudoPassword)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
