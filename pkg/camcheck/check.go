package camcheck

import (
	"context"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/robostack/rigcheck/pkg/check"
	"github.com/robostack/rigcheck/pkg/execcheck"
)

// DefaultProbe is the vendored camera diagnostic shipped next to the
// rigcheck binary.
const DefaultProbe = "camera_probe"

// DefaultFrames is how many frames the probe grabs before declaring
// the camera healthy. A camera that opens but delivers no frames is a
// common failure mode on loose USB connectors.
const DefaultFrames = 10

// Check verifies a camera by running the vendored probe, which opens
// the device, applies the requested capture mode, and grabs a handful
// of frames. The probe's exit status is the verdict. When the probe
// prints a JSON report, the interesting fields are surfaced as details.
type Check struct {
	Name       string           // camera label, e.g. "ego", "head"
	Probe      string           // probe program (default: camera_probe)
	Resolution string           // capture mode, e.g. "720p", "1080p", "vga"
	Frames     int              // frames to grab (default 10)
	Serial     string           // camera serial number for multi-camera rigs
	Timeout    time.Duration    // probe timeout
	Runner     execcheck.Runner // injected for testing
}

// Run executes the camera check.
func (c *Check) Run(ctx context.Context) check.Result {
	start := time.Now()
	result := c.run(ctx)
	result.Duration = time.Since(start)
	return result
}

func (c *Check) run(ctx context.Context) check.Result {
	result := check.Result{Name: "camera: " + c.Name}

	probe := c.Probe
	if probe == "" {
		probe = DefaultProbe
	}
	path, err := c.Runner.LookPath(execcheck.ResolveProgram(probe))
	if err != nil {
		return result.Failf("camera probe not found: %v", err)
	}

	frames := c.Frames
	if frames == 0 {
		frames = DefaultFrames
	}
	args := []string{"--frames", strconv.Itoa(frames), "--json"}
	if c.Resolution != "" {
		args = append(args, "--resolution", c.Resolution)
	}
	if c.Serial != "" {
		args = append(args, "--serial", c.Serial)
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
			return result.Failf("probe timed out after %s", timeout)
		}
		if msg := probeError(stdout); msg != "" {
			result.AddDetailf("probe: %s", msg)
		} else if tail := execcheck.LastLine(stderr); tail != "" {
			result.AddDetailf("stderr: %s", tail)
		}
		result.Status = check.StatusFail
		result.Err = err
		return result
	}

	addReport(&result, stdout)
	result.Status = check.StatusOK
	return result
}

// addReport pulls serial, frame count, and measured fps out of the
// probe's JSON report. A probe built without JSON output is fine; the
// exit status already carried the verdict.
func addReport(result *check.Result, stdout string) {
	if !gjson.Valid(stdout) {
		return
	}
	if s := gjson.Get(stdout, "serial"); s.Exists() {
		result.AddDetailf("serial: %s", s.String())
	}
	if f := gjson.Get(stdout, "frames_grabbed"); f.Exists() {
		result.AddDetailf("frames: %d", f.Int())
	}
	if fps := gjson.Get(stdout, "fps"); fps.Exists() {
		result.AddDetailf("fps: %.1f", fps.Float())
	}
}

func probeError(stdout string) string {
	if !gjson.Valid(stdout) {
		return ""
	}
	return gjson.Get(stdout, "error").String()
}
