package devcheck

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/robostack/rigcheck/pkg/check"
)

// FileSystem abstracts stat for testability.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
}

// OSFileSystem uses the real os package.
type OSFileSystem struct{}

// Stat returns file info for the named path.
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Check verifies that a device node is present before the heavier
// subprocess diagnostics bother with it. A missing /dev entry means
// the kernel never enumerated the device, which is a cabling or udev
// problem rather than a driver one.
type Check struct {
	Path       string     // device path, e.g. /dev/video0
	CharDevice bool       // require a character device node
	FS         FileSystem // injected for testing
}

// Run executes the device node check.
func (c *Check) Run(ctx context.Context) check.Result {
	start := time.Now()
	result := c.run()
	result.Duration = time.Since(start)
	return result
}

func (c *Check) run() check.Result {
	result := check.Result{Name: "device: " + c.Path}

	info, err := c.FS.Stat(c.Path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return result.Fail("not found", err)
		case os.IsPermission(err):
			return result.Fail("permission denied", err)
		default:
			return result.Failf("stat failed: %v", err)
		}
	}

	mode := info.Mode()
	if c.CharDevice && mode&fs.ModeCharDevice == 0 {
		return result.Failf("not a character device (mode %s)", mode)
	}

	result.AddDetailf("mode: %s", mode)

	if mode.Perm()&0444 == 0 {
		return result.Fail("not readable", fmt.Errorf("no read permission on %s", c.Path))
	}

	result.Status = check.StatusOK
	return result
}
