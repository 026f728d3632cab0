// Package harness runs an ordered sequence of hardware checks against
// the robot's peripherals and reports readiness. Checks run strictly
// sequentially: cameras are exclusive-access devices, and stopping the
// service that owns one around a check cannot be parallelized with
// other checks touching the same device class.
package harness

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/robostack/rigcheck/pkg/check"
	"github.com/robostack/rigcheck/pkg/output"
	"github.com/robostack/rigcheck/pkg/servicectl"
)

// DefaultSettle is how long to wait after stopping a service before
// probing the device it owned, giving the driver time to release it.
const DefaultSettle = time.Second

// Step is one ordered unit of verification. When ExclusiveService is
// set, the named unit is stopped before the check runs and restarted
// afterwards regardless of the outcome, because the device under test
// can be held open by only one process at a time.
type Step struct {
	Name             string
	Check            check.Checker
	ExclusiveService string
}

// Tally accumulates pass/fail counts for one run. It is a value
// threaded through the run, never process-wide state. Service status
// queries are informational and never touch the tally.
type Tally struct {
	Passed int
	Failed int
}

// Total returns the number of functional checks executed.
func (t Tally) Total() int { return t.Passed + t.Failed }

// Verdict classifies a finished run.
type Verdict int

const (
	AllPassed Verdict = iota
	SomeFailed
	Interrupted
)

// ExitCode maps a verdict to the harness process exit status.
// 0 = every check passed, 1 = at least one failed, 2 = the run was
// interrupted before all checks completed.
func (v Verdict) ExitCode() int {
	switch v {
	case AllPassed:
		return 0
	case SomeFailed:
		return 1
	default:
		return 2
	}
}

// Harness executes Steps in order, reports the state of the declared
// Services, prints a summary, and yields a Verdict.
type Harness struct {
	Steps    []Step
	Services []string           // units to report on after the checks
	Manager  servicectl.Manager // exclusive stop/restart and status queries
	Out      io.Writer          // defaults to os.Stdout
	Settle   time.Duration      // defaults to DefaultSettle
	Log      logrus.FieldLogger
}

// Run executes every step exactly once, in order, never in parallel.
// A failing check is recorded and the run continues; nothing short of
// context cancellation stops the sequence. Cancellation marks the
// remaining steps as skipped and yields the Interrupted verdict with
// the counts accumulated so far.
func (h *Harness) Run(ctx context.Context) (Tally, Verdict) {
	var tally Tally
	interrupted := false

	for _, step := range h.Steps {
		if interrupted || ctx.Err() != nil {
			interrupted = true
			output.PrintResult(h.out(), check.Result{Name: step.Name, Status: check.StatusSkip})
			continue
		}

		output.PrintStart(h.out(), step.Name)
		result := h.runStep(ctx, step)

		if ctx.Err() != nil {
			// Interrupted while this step was in flight. Its
			// diagnostic was killed, so it is reported as skipped
			// rather than folded into the fail count.
			interrupted = true
			result.Status = check.StatusSkip
			output.PrintResult(h.out(), result)
			continue
		}

		output.PrintResult(h.out(), result)
		if result.OK() {
			tally.Passed++
		} else {
			tally.Failed++
		}
	}

	h.reportServices(ctx)

	verdict := AllPassed
	switch {
	case interrupted:
		verdict = Interrupted
	case tally.Failed > 0:
		verdict = SomeFailed
	}
	output.PrintSummary(h.out(), tally.Passed, tally.Failed, interrupted)
	return tally, verdict
}

// runStep wraps one check with its exclusive-service dance: best-effort
// stop, settle, check, best-effort restart. The restart is deferred and
// runs on an uncancellable context so an interrupted run still leaves
// the service running.
func (h *Harness) runStep(ctx context.Context, step Step) check.Result {
	if step.ExclusiveService != "" && h.Manager != nil {
		svc := servicectl.BestEffort{Manager: h.Manager, Log: h.Log}
		_ = svc.Stop(ctx, step.ExclusiveService)
		h.settle(ctx)
		defer func() {
			_ = svc.Restart(context.WithoutCancel(ctx), step.ExclusiveService)
		}()
	}
	return step.Check.Run(ctx)
}

// reportServices prints the activation state of each declared unit.
// Informational only: a query failure is logged and the unit shown as
// inactive, and nothing here changes the tally or the verdict.
func (h *Harness) reportServices(ctx context.Context) {
	if h.Manager == nil {
		return
	}
	for _, unit := range h.Services {
		active, err := h.Manager.IsActive(context.WithoutCancel(ctx), unit)
		if err != nil {
			h.logger().WithError(err).WithField("unit", unit).Debug("service status query failed")
		}
		output.PrintServiceStatus(h.out(), servicectl.Status{Unit: unit, Active: active})
	}
}

func (h *Harness) settle(ctx context.Context) {
	d := h.Settle
	if d == 0 {
		d = DefaultSettle
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (h *Harness) out() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stdout
}

func (h *Harness) logger() logrus.FieldLogger {
	if h.Log != nil {
		return h.Log
	}
	return logrus.StandardLogger()
}
