package commandmanager

import (
	"context"
	"io"
	"time"
)

// CommandConfig describes a single external tool invocation.
type CommandConfig struct {
	Command string
	Args    []string
	// Env entries (KEY=value) appended to the inherited environment.
	Env []string
	// Sudo prepends `sudo -S` and feeds the sudo password on stdin.
	Sudo bool

	// Stdout/Stderr, when set, receive the child's output as it is
	// produced, in addition to the captured copies in CommandResult.
	// The bootstrap runner uses this so that a failing tool's own
	// stderr is what the operator sees.
	Stdout io.Writer
	Stderr io.Writer
}

// CommandResult encapsulates the outcome of a command execution.
type CommandResult struct {
	Command   string
	STDOUT    string
	STDERR    string
	ExitCode  int
	Duration  time.Duration
	Timestamp time.Time
}

// CommandManager executes commands on a target host, locally or over SSH.
type CommandManager interface {
	Run(ctx context.Context, config CommandConfig) (CommandResult, error)
	RunLocal(ctx context.Context, config CommandConfig) (CommandResult, error)
	RunRemote(ctx context.Context, config CommandConfig) (CommandResult, error)
}
