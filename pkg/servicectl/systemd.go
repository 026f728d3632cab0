package servicectl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/robostack/rigcheck/pkg/execcheck"
)

// Systemd implements Manager by shelling out to systemctl.
type Systemd struct {
	Runner execcheck.Runner // injected for testing
}

// NewSystemd returns a Systemd manager backed by real processes.
func NewSystemd() *Systemd {
	return &Systemd{Runner: execcheck.SystemRunner{}}
}

// IsActive reports whether the unit is currently active.
// systemctl is-active exits 0 for active and non-zero for every other
// state, so a clean non-zero exit means inactive, not an error.
func (s *Systemd) IsActive(ctx context.Context, unit string) (bool, error) {
	_, _, err := s.Runner.Run(ctx, "systemctl", "is-active", "--quiet", unit)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, fmt.Errorf("systemctl is-active %s: %w", unit, err)
}

// Stop stops the unit.
func (s *Systemd) Stop(ctx context.Context, unit string) error {
	return s.action(ctx, "stop", unit)
}

// Start starts the unit.
func (s *Systemd) Start(ctx context.Context, unit string) error {
	return s.action(ctx, "start", unit)
}

// Restart restarts the unit.
func (s *Systemd) Restart(ctx context.Context, unit string) error {
	return s.action(ctx, "restart", unit)
}

func (s *Systemd) action(ctx context.Context, verb, unit string) error {
	_, stderr, err := s.Runner.Run(ctx, "systemctl", verb, unit)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return fmt.Errorf("systemctl %s %s: %s", verb, unit, msg)
		}
		return fmt.Errorf("systemctl %s %s: %w", verb, unit, err)
	}
	return nil
}
