package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robostack/rigcheck/pkg/check"
	"github.com/robostack/rigcheck/pkg/harness"
	"github.com/robostack/rigcheck/pkg/output"
	"github.com/robostack/rigcheck/pkg/servicectl"
)

// ErrCheckFailed is returned when a check fails.
var ErrCheckFailed = errors.New("check failed")

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runCheck executes a single check standalone, prints the result, and
// returns an error if it failed. The returned error causes cobra to
// exit with code 1.
func runCheck(c check.Checker) error {
	ctx, stop := signalContext()
	defer stop()

	result := c.Run(ctx)
	output.PrintResult(os.Stdout, result)

	if !result.OK() {
		return ErrCheckFailed
	}
	return nil
}

// runCheckWithService is runCheck for a check that needs exclusive
// access to a device owned by a running service. The stop and restart
// are best-effort, exactly as in a full verify run.
func runCheckWithService(c check.Checker, unit string, settle time.Duration) error {
	ctx, stop := signalContext()
	defer stop()

	svc := servicectl.BestEffort{Manager: servicectl.NewSystemd()}
	_ = svc.Stop(ctx, unit)
	if settle == 0 {
		settle = harness.DefaultSettle
	}
	select {
	case <-time.After(settle):
	case <-ctx.Done():
	}
	defer func() {
		_ = svc.Restart(context.WithoutCancel(ctx), unit)
	}()

	result := c.Run(ctx)
	output.PrintResult(os.Stdout, result)

	if !result.OK() {
		return ErrCheckFailed
	}
	return nil
}
