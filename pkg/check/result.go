package check

import "time"

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"

	// StatusSkip marks a check that never ran because the verification
	// run was interrupted before reaching it. Skipped checks are not
	// counted as passed or failed.
	StatusSkip Status = "SKIP"
)

// Result holds the outcome of a single check.
type Result struct {
	Name     string        // e.g., "camera: ego", "hand: left"
	Status   Status        // OK, FAIL, or SKIP
	Details  []string      // human-readable details
	Err      error         // underlying error for failures
	Duration time.Duration // wall time spent inside Run
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Skipped returns true if the check was never executed.
func (r Result) Skipped() bool {
	return r.Status == StatusSkip
}
