package commandmanager

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/netcapops/capstrap/capstrap/common"
)

type mockSSHDialer struct {
	dialError error
}

func (m *mockSSHDialer) Dial(network, addr string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error) {
	return nil, m.dialError
}

type mockSSHConfigurer struct{}

func (m *mockSSHConfigurer) ClientConfig(creds common.Credentials) (*ssh.ClientConfig, error) {
	return &ssh.ClientConfig{User: creds.User}, nil
}

func TestRunLocal(t *testing.T) {
	manager := UnixCommandManager{Hostname: "localhost"}

	result, err := manager.RunLocal(context.Background(), CommandConfig{
		Command: "echo",
		Args:    []string{"hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello\n", result.STDOUT)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "echo", result.Command)
}

func TestRunLocalExitCode(t *testing.T) {
	manager := UnixCommandManager{Hostname: "localhost"}

	result, err := manager.RunLocal(context.Background(), CommandConfig{
		Command: "sh",
		Args:    []string{"-c", "echo broken >&2; exit 3"},
	})

	require.Error(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.STDERR, "broken")
}

func TestRunLocalEnv(t *testing.T) {
	manager := UnixCommandManager{Hostname: "localhost"}

	result, err := manager.RunLocal(context.Background(), CommandConfig{
		Command: "sh",
		Args:    []string{"-c", "echo $CAPSTRAP_TEST_VALUE"},
		Env:     []string{"CAPSTRAP_TEST_VALUE=present"},
	})

	require.NoError(t, err)
	assert.Equal(t, "present\n", result.STDOUT)
}

func TestRunLocalTeesOutput(t *testing.T) {
	manager := UnixCommandManager{Hostname: "localhost"}

	var seen strings.Builder
	result, err := manager.RunLocal(context.Background(), CommandConfig{
		Command: "echo",
		Args:    []string{"tee me"},
		Stdout:  &seen,
	})

	require.NoError(t, err)
	assert.Equal(t, "tee me\n", result.STDOUT)
	assert.Equal(t, "tee me\n", seen.String())
}

func TestIsLocal(t *testing.T) {
	for _, hostname := range []string{"", "localhost", "127.0.0.1", "::1"} {
		manager := UnixCommandManager{Hostname: hostname}
		assert.True(t, manager.IsLocal(), "expected %q to be local", hostname)
	}

	manager := UnixCommandManager{Hostname: "capture1.example.com"}
	assert.False(t, manager.IsLocal())
}

func TestRunRemoteDialError(t *testing.T) {
	manager := UnixCommandManager{
		Hostname:  "remote",
		SSHClient: &mockSSHDialer{dialError: errors.New("mock dial error")},
		SSHConfig: &mockSSHConfigurer{},
		Credentials: common.Credentials{
			User:     "operator",
			Password: "secret",
		},
	}

	_, err := manager.RunRemote(context.Background(), CommandConfig{Command: "ls"})

	require.Error(t, err)
	assert.Equal(t, "mock dial error", err.Error())
}

func TestRunRemoteWithoutClient(t *testing.T) {
	manager := UnixCommandManager{Hostname: "remote"}

	_, err := manager.RunRemote(context.Background(), CommandConfig{Command: "ls"})
	require.Error(t, err)
}

func TestRemoteCommandLine(t *testing.T) {
	line := remoteCommandLine(CommandConfig{
		Command: "apt-get",
		Args:    []string{"install", "-y", "tshark"},
		Env:     []string{"DEBIAN_FRONTEND=noninteractive"},
		Sudo:    true,
	})

	assert.Equal(t, "sudo -S env DEBIAN_FRONTEND=noninteractive apt-get install -y tshark", line)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, 0, getExitCode(nil))
	assert.Equal(t, -1, getExitCode(errors.New("not an exit error")))
}

func TestSudoError(t *testing.T) {
	err := sudoError(CommandResult{STDERR: "sudo: user is not in the sudoers file"})
	require.Error(t, err)

	err = sudoError(CommandResult{STDOUT: "Sorry, try again.\nincorrect password"})
	require.Error(t, err)

	assert.NoError(t, sudoError(CommandResult{STDOUT: "ok"}))
}
