package execcheck

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robostack/rigcheck/pkg/check"
)

// DefaultTimeout bounds a diagnostic that hangs instead of failing.
// Hardware that wedges the driver is reported as a failed check rather
// than blocking the run.
const DefaultTimeout = 60 * time.Second

// Check runs an external diagnostic program. The program's exit status
// is the verdict: zero passes, anything else fails. A program that
// cannot be started at all (missing binary, permission denied) fails
// the same way a non-zero exit does.
type Check struct {
	Name    string        // label, e.g. "diag: imu_selftest"
	Program string        // diagnostic to run
	Args    []string      // arguments passed to the diagnostic
	Timeout time.Duration // kills the diagnostic when exceeded (default 60s)
	Runner  Runner        // injected for testing
}

// ResolveProgram returns the path to use for a diagnostic program.
// Relative paths containing a separator are resolved against the
// directory holding the rigcheck executable itself, not the caller's
// working directory, so vendored diagnostics are found no matter where
// rigcheck is invoked from. Bare names and absolute paths pass through.
func ResolveProgram(program string) string {
	if filepath.IsAbs(program) || !strings.ContainsRune(program, os.PathSeparator) {
		return program
	}
	exe, err := os.Executable()
	if err != nil {
		return program
	}
	return filepath.Join(filepath.Dir(exe), program)
}

// Run executes the diagnostic.
func (c *Check) Run(ctx context.Context) check.Result {
	start := time.Now()
	result := c.run(ctx)
	result.Duration = time.Since(start)
	return result
}

func (c *Check) run(ctx context.Context) check.Result {
	result := check.Result{Name: c.Name}

	program := ResolveProgram(c.Program)
	path, err := c.Runner.LookPath(program)
	if err != nil {
		return result.Failf("diagnostic not found: %v", err)
	}
	result.AddDetailf("exec: %s", path)

	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := c.Runner.Run(ctx, path, c.Args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return result.Failf("timed out after %s", timeout)
		}
		result.AddDetailf("diagnostic failed: %v", err)
		if tail := LastLine(stderr); tail != "" {
			result.AddDetailf("stderr: %s", tail)
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	if out := LastLine(stdout); out != "" {
		result.AddDetailf("output: %s", out)
	}
	result.Status = check.StatusOK
	return result
}

// LastLine returns the final non-empty line of subprocess output,
// which is where diagnostics put their one-line verdict.
func LastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
