package sdkcheck

import (
	"context"
	"time"

	"github.com/robostack/rigcheck/pkg/check"
	"github.com/robostack/rigcheck/pkg/execcheck"
	"github.com/robostack/rigcheck/pkg/version"
)

// Check verifies that a vendored SDK is installed by locating one of
// its tools and, optionally, gating on the version it reports. Drivers
// built against one SDK major version will not load with another, so
// the version gate catches a half-upgraded robot before the camera
// checks fail with something cryptic.
type Check struct {
	Name        string           // SDK label, e.g. "zed", "realsense"
	Tool        string           // tool that ships with the SDK, e.g. "ZED_Diagnostic"
	VersionArgs []string         // args to get version (default: --version)
	MinVersion  *version.Version // minimum version required (inclusive)
	Timeout     time.Duration    // timeout for the version command
	Runner      execcheck.Runner // injected for testing
}

// Run executes the SDK check.
func (c *Check) Run(ctx context.Context) check.Result {
	start := time.Now()
	result := c.run(ctx)
	result.Duration = time.Since(start)
	return result
}

func (c *Check) run(ctx context.Context) check.Result {
	result := check.Result{Name: "sdk: " + c.Name}

	path, err := c.Runner.LookPath(execcheck.ResolveProgram(c.Tool))
	if err != nil {
		return result.Failf("not installed: %v", err)
	}
	result.AddDetailf("tool: %s", path)

	args := c.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = execcheck.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := c.Runner.Run(ctx, path, args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return result.Failf("version command timed out after %s", timeout)
		}
		return result.Failf("version command failed: %v", err)
	}

	output := stdout
	if output == "" {
		output = stderr
	}

	if c.MinVersion == nil {
		if out := execcheck.LastLine(output); out != "" {
			result.AddDetailf("version: %s", out)
		}
		result.Status = check.StatusOK
		return result
	}

	installed, err := version.Extract(output)
	if err != nil {
		return result.Failf("could not parse version from output: %v", err)
	}
	result.AddDetailf("version: %s", installed)

	if !installed.GreaterThanOrEqual(*c.MinVersion) {
		return result.Failf("version %s < minimum %s", installed, c.MinVersion)
	}

	result.Status = check.StatusOK
	return result
}
