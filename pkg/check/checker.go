package check

import "context"

// Checker is implemented by all check types.
// Each check verifies one aspect of the robot's hardware stack and
// returns a Result indicating success or failure. A failing check is
// data, not an error: Run never panics and never requires the caller
// to handle an error path.
//
// The context bounds the check; cancellation or deadline expiry must
// terminate any subprocess the check started.
//
// Implementations:
//   - execcheck.Check: generic external diagnostic, exit 0 = pass
//   - camcheck.Check: camera open + frame grab via the vendored probe
//   - handcheck.Check: Modbus-TCP session with a hand controller
//   - sdkcheck.Check: vendored SDK tool presence and version gate
//   - devcheck.Check: device node exists and is readable
type Checker interface {
	Run(ctx context.Context) Result
}
