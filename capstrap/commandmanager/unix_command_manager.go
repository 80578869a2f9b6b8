package commandmanager

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/netcapops/capstrap/capstrap/common"
)

// SSHDialer abstracts ssh.Dial so tests can stand in for the network.
type SSHDialer interface {
	Dial(network, addr string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error)
}

// SSHConfigurer builds the client config (auth methods included) for a
// remote target. Provided by the sshmanager package.
type SSHConfigurer interface {
	ClientConfig(creds common.Credentials) (*ssh.ClientConfig, error)
}

// UnixCommandManager executes commands on a Unix host. Hostnames that
// resolve to the invoking machine run through os/exec; anything else is
// dialed over SSH on the configured port.
type UnixCommandManager struct {
	Hostname  string
	Port      string
	SSHClient SSHDialer
	SSHConfig SSHConfigurer
	common.Credentials
}

func (u *UnixCommandManager) RunLocal(ctx context.Context, config CommandConfig) (CommandResult, error) {
	start := time.Now()

	name, args := config.Command, config.Args
	var stdin io.Reader
	if config.Sudo {
		args = append([]string{"-S", name}, args...)
		name = "sudo"
		stdin = strings.NewReader(u.SudoPassword + "\n")
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	if len(config.Env) > 0 {
		cmd.Env = append(os.Environ(), config.Env...)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = teeWriter(&stdout, config.Stdout)
	cmd.Stderr = teeWriter(&stderr, config.Stderr)

	err := cmd.Run()

	result := CommandResult{
		Command:   config.Command,
		STDOUT:    stdout.String(),
		STDERR:    stderr.String(),
		ExitCode:  getExitCode(err),
		Duration:  time.Since(start),
		Timestamp: start,
	}

	if serr := sudoError(result); serr != nil {
		return result, serr
	}

	return result, err
}

func (u *UnixCommandManager) RunRemote(ctx context.Context, config CommandConfig) (CommandResult, error) {
	logrus.WithFields(logrus.Fields{
		"hostname": u.Hostname,
		"command":  config.Command,
	}).Debug("Executing remote command")

	if u.SSHClient == nil || u.SSHConfig == nil {
		return CommandResult{}, errors.New("SSH client is not initialized")
	}

	sshConfig, err := u.SSHConfig.ClientConfig(u.Credentials)
	if err != nil {
		return CommandResult{}, err
	}

	dialTimeout := 15 * time.Minute
	if deadline, ok := ctx.Deadline(); ok {
		dialTimeout = time.Until(deadline)
	}

	port := u.Port
	if port == "" {
		port = "22"
	}

	client, err := u.SSHClient.Dial("tcp", u.Hostname+":"+port, sshConfig, dialTimeout)
	if err != nil {
		return CommandResult{}, err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return CommandResult{}, err
	}
	defer session.Close()

	cmdStr := remoteCommandLine(config)
	if config.Sudo {
		session.Stdin = strings.NewReader(u.SudoPassword + "\n")
	}

	var stdout, stderr strings.Builder
	session.Stdout = teeWriter(&stdout, config.Stdout)
	session.Stderr = teeWriter(&stderr, config.Stderr)

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmdStr)
	}()

	select {
	case err := <-done:
		result := CommandResult{
			Command:   cmdStr,
			STDOUT:    stdout.String(),
			STDERR:    stderr.String(),
			ExitCode:  getExitCode(err),
			Duration:  time.Since(start),
			Timestamp: start,
		}
		if serr := sudoError(result); serr != nil {
			return result, serr
		}
		return result, err

	case <-ctx.Done():
		logrus.WithField("command", cmdStr).Error("Command over SSH timed out")
		return CommandResult{}, ctx.Err()
	}
}

func (u *UnixCommandManager) Run(ctx context.Context, config CommandConfig) (CommandResult, error) {
	if u.IsLocal() {
		return u.RunLocal(ctx, config)
	}
	return u.RunRemote(ctx, config)
}

// IsLocal reports whether commands for this host run through os/exec
// instead of SSH.
func (u *UnixCommandManager) IsLocal() bool {
	switch u.Hostname {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// remoteCommandLine flattens a CommandConfig into the single string an SSH
// session runs. Env entries ride on an explicit `env` so they survive sudo.
func remoteCommandLine(config CommandConfig) string {
	parts := make([]string, 0, len(config.Args)+len(config.Env)+3)
	if config.Sudo {
		parts = append(parts, "sudo", "-S")
	}
	if len(config.Env) > 0 {
		parts = append(parts, "env")
		parts = append(parts, config.Env...)
	}
	parts = append(parts, config.Command)
	parts = append(parts, config.Args...)
	return strings.Join(parts, " ")
}

func teeWriter(capture io.Writer, extra io.Writer) io.Writer {
	if extra == nil {
		return capture
	}
	return io.MultiWriter(capture, extra)
}

// sudoError surfaces sudo's own authentication failures, which otherwise
// hide inside the tool output.
func sudoError(result CommandResult) error {
	combined := result.STDOUT + result.STDERR
	if strings.Contains(combined, "incorrect password") {
		return errors.New("sudo: incorrect password provided")
	}
	if strings.Contains(combined, "is not in the sudoers file") {
		return errors.New("sudo: user is not in the sudoers file")
	}
	return nil
}

func getExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	var sshErr *ssh.ExitError
	if errors.As(err, &sshErr) {
		return sshErr.ExitStatus()
	}
	return -1
}
