package handcheck

import (
	"context"
	"net"
	"time"

	"github.com/robostack/rigcheck/pkg/check"
	"github.com/robostack/rigcheck/pkg/execcheck"
)

// DefaultDiag is the vendored hand diagnostic shipped next to the
// rigcheck binary. It establishes a Modbus-TCP session with the hand
// controller and exercises a register round-trip.
const DefaultDiag = "hand_diag"

// DefaultDialTimeout bounds the reachability probe. The controller
// answers a SYN in well under a second when it is powered.
const DefaultDialTimeout = 3 * time.Second

// Dialer abstracts network dialing for testability.
type Dialer interface {
	DialTimeout(network, address string, timeout time.Duration) (net.Conn, error)
}

// NetDialer uses the real net package.
type NetDialer struct{}

// DialTimeout dials the network address with a timeout.
func (NetDialer) DialTimeout(network, address string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout(network, address, timeout)
}

// Check verifies a dexterous hand controller. It first probes TCP
// reachability of the controller's Modbus endpoint, which turns a
// powered-off hand into a fast failure with a clear message, then runs
// the vendored diagnostic whose exit status is the verdict.
type Check struct {
	Name        string           // hand label, e.g. "left", "right"
	Address     string           // Modbus-TCP endpoint, host:port
	Diag        string           // diagnostic program (default: hand_diag)
	DialTimeout time.Duration    // reachability probe timeout
	Timeout     time.Duration    // diagnostic timeout
	Dialer      Dialer           // injected for testing
	Runner      execcheck.Runner // injected for testing
}

// Run executes the hand controller check.
func (c *Check) Run(ctx context.Context) check.Result {
	start := time.Now()
	result := c.run(ctx)
	result.Duration = time.Since(start)
	return result
}

func (c *Check) run(ctx context.Context) check.Result {
	result := check.Result{Name: "hand: " + c.Name}

	dialTimeout := c.DialTimeout
	if dialTimeout == 0 {
		dialTimeout = DefaultDialTimeout
	}
	conn, err := c.Dialer.DialTimeout("tcp", c.Address, dialTimeout)
	if err != nil {
		return result.Failf("controller unreachable at %s: %v", c.Address, err)
	}
	_ = conn.Close()
	result.AddDetailf("reachable: %s", c.Address)

	diag := c.Diag
	if diag == "" {
		diag = DefaultDiag
	}
	path, err := c.Runner.LookPath(execcheck.ResolveProgram(diag))
	if err != nil {
		return result.Failf("hand diagnostic not found: %v", err)
	}

	timeout := c.Timeout
	if timeout == 0 {
		timeout = execcheck.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stdout, stderr, err := c.Runner.Run(ctx, path, "--address", c.Address)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return result.Failf("diagnostic timed out after %s", timeout)
		}
		result.AddDetailf("diagnostic failed: %v", err)
		if tail := execcheck.LastLine(stderr); tail != "" {
			result.AddDetailf("stderr: %s", tail)
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	if out := execcheck.LastLine(stdout); out != "" {
		result.AddDetailf("diag: %s", out)
	}
	result.Status = check.StatusOK
	return result
}
