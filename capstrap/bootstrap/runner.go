package bootstrap

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/netcapops/capstrap/capstrap/console"
	"github.com/netcapops/capstrap/capstrap/host"
	"github.com/netcapops/capstrap/capstrap/hostgroup"
)

// DefaultNextCommand is the suite launcher the operator runs after a
// successful bootstrap.
const DefaultNextCommand = "sudo python3 netcapture.py"

// Runner executes plans and narrates them on the console.
type Runner struct {
	Console *console.Console
	// NextCommand appears in the completion banner.
	NextCommand string
	// DryRun prints the plan without touching the host.
	DryRun bool
	// Report collects per-step outcomes when non-nil.
	Report *Report
}

// Run walks the plan in order. Steps tagged ContinueOnError log their
// failure and let the run proceed; everything else aborts with the
// failing tool's exit code. A dry run prints the steps and claims
// nothing.
func (r *Runner) Run(ctx context.Context, h *host.Host, plan []Step) error {
	for _, step := range plan {
		if r.DryRun {
			r.Console.Progress("%s (dry run)", step.Description)
			continue
		}
		r.Console.Progress("%s...", step.Description)

		result, err := step.Run(ctx)
		r.Report.addStep(h.DisplayName(), step, result, err)

		if err == nil {
			continue
		}

		fields := logrus.Fields{
			"host":     h.DisplayName(),
			"step":     step.Name,
			"exitCode": result.ExitCode,
		}

		if step.OnFailure == ContinueOnError {
			// The tolerated path stays quiet on the console; the tool's
			// own stderr has already reached the operator.
			logrus.WithFields(fields).WithError(err).Warn("Step failed; continuing")
			continue
		}

		logrus.WithFields(fields).WithError(err).Error("Step failed")
		r.Console.Problem("%s failed on %s", step.Name, h.DisplayName())
		return &StepError{Step: step.Name, ExitCode: result.ExitCode, Err: err}
	}

	if r.DryRun {
		r.Console.Progress("Dry run complete for %s", h.DisplayName())
		return nil
	}

	r.Console.Success("%s is capture-ready", h.DisplayName())
	return nil
}

// Bootstrap provisions every host in the group and prints the completion
// banner once the whole fleet is ready. The banner is the last output of
// a successful run; it never appears after a fatal step or on a dry run.
func Bootstrap(ctx context.Context, hg *hostgroup.HostGroup, r *Runner, concurrency int) error {
	r.Report.start()

	err := hg.ForEach(ctx, concurrency, func(ctx context.Context, h *host.Host) error {
		return r.Run(ctx, h, BuildPlan(h))
	})
	r.Report.finish()
	if err != nil {
		return err
	}

	if r.DryRun {
		return nil
	}

	next := r.NextCommand
	if next == "" {
		next = DefaultNextCommand
	}
	r.Console.Banner(
		"NetCapture Pro bootstrap complete",
		"Launch the suite: "+next,
	)
	return nil
}
