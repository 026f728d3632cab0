package servicectl

import (
	"context"

	"github.com/sirupsen/logrus"
)

// BestEffort wraps a Manager so control actions never fail: errors are
// logged and swallowed. Stopping the camera server before a frame-grab
// check is a courtesy, not a requirement; a stop or restart that fails
// must not abort the run and must not count against any check.
// Queries pass through unchanged.
type BestEffort struct {
	Manager
	Log logrus.FieldLogger
}

// Stop attempts to stop the unit, logging any failure.
func (b BestEffort) Stop(ctx context.Context, unit string) error {
	if err := b.Manager.Stop(ctx, unit); err != nil {
		b.logger().WithError(err).WithField("unit", unit).Debug("service stop failed, continuing")
	}
	return nil
}

// Start attempts to start the unit, logging any failure.
func (b BestEffort) Start(ctx context.Context, unit string) error {
	if err := b.Manager.Start(ctx, unit); err != nil {
		b.logger().WithError(err).WithField("unit", unit).Debug("service start failed, continuing")
	}
	return nil
}

// Restart attempts to restart the unit, logging any failure.
func (b BestEffort) Restart(ctx context.Context, unit string) error {
	if err := b.Manager.Restart(ctx, unit); err != nil {
		b.logger().WithError(err).WithField("unit", unit).Debug("service restart failed, continuing")
	}
	return nil
}

func (b BestEffort) logger() logrus.FieldLogger {
	if b.Log != nil {
		return b.Log
	}
	return logrus.StandardLogger()
}
