// Package servicectl queries and controls the background services that
// own robot hardware while rigcheck is not running. The camera server
// holds the ZED open for streaming; a frame-grab diagnostic can only
// run while that service is stopped.
package servicectl

import "context"

// Manager is the service-manager surface the harness needs.
type Manager interface {
	IsActive(ctx context.Context, unit string) (bool, error)
	Stop(ctx context.Context, unit string) error
	Start(ctx context.Context, unit string) error
	Restart(ctx context.Context, unit string) error
}

// Status is a point-in-time snapshot of one unit's activation state.
// It is informational only and never feeds the pass/fail tally.
type Status struct {
	Unit   string
	Active bool
}

// String renders the state the way systemctl does.
func (s Status) String() string {
	if s.Active {
		return "active"
	}
	return "inactive"
}
