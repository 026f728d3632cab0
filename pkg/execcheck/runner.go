package execcheck

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner abstracts diagnostic execution for testability.
type Runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// SystemRunner implements Runner using actual OS processes.
type SystemRunner struct{}

// LookPath searches for an executable in PATH, or verifies a path
// containing a separator directly.
func (SystemRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output. The process is killed
// when the context is cancelled or its deadline expires.
func (SystemRunner) Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// MockRunner is a test double for Runner.
type MockRunner struct {
	LookPathFunc func(file string) (string, error)
	RunFunc      func(ctx context.Context, name string, args ...string) (string, string, error)
}

// LookPath calls the mock function, or succeeds when none is set.
func (m *MockRunner) LookPath(file string) (string, error) {
	if m.LookPathFunc == nil {
		return file, nil
	}
	return m.LookPathFunc(file)
}

// Run calls the mock function.
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	return m.RunFunc(ctx, name, args...)
}
