// Package bootstrap sequences the provisioning steps that take a bare
// host to a capture-ready one: refresh the package index, install the
// system capture stack, then install the Python libraries the suite
// imports.
package bootstrap

import (
	"context"
	"fmt"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// FailurePolicy decides what a step's failure does to the rest of the run.
type FailurePolicy int

const (
	// AbortOnError stops the run and propagates the step's exit code.
	AbortOnError FailurePolicy = iota
	// ContinueOnError records the failure and moves on.
	ContinueOnError
)

// Step is one provisioning action in a fixed sequence.
type Step struct {
	// Name is a short identifier used in reports and failure messages.
	Name string
	// Description is the operator-facing progress line.
	Description string
	OnFailure   FailurePolicy
	Run         func(ctx context.Context) (cm.CommandResult, error)
}

// StepError reports a fatal step failure together with the exit code
// the process should carry out.
type StepError struct {
	Step     string
	ExitCode int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
