package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robostack/rigcheck/pkg/camcheck"
	"github.com/robostack/rigcheck/pkg/devcheck"
	"github.com/robostack/rigcheck/pkg/execcheck"
	"github.com/robostack/rigcheck/pkg/handcheck"
	"github.com/robostack/rigcheck/pkg/harness"
	"github.com/robostack/rigcheck/pkg/sdkcheck"
	"github.com/robostack/rigcheck/pkg/servicectl"
	"github.com/robostack/rigcheck/pkg/version"
)

// verifyOptions is everything the fixed verification sequence can be
// tuned with. There is no configuration file; the sequence is data.
type verifyOptions struct {
	timeout       time.Duration
	settle        time.Duration
	leftHand      string
	rightHand     string
	cameraService string
	handService   string
	egoResolution string
	skip          []string
}

var verifyOpts verifyOptions

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run the full hardware verification sequence",
	Long: "Runs every hardware check in order: device nodes, SDK versions, ego and\n" +
		"head cameras (stopping the camera server around each, since the cameras are\n" +
		"exclusive-access), and both hand controllers. Ends with a service status\n" +
		"report and a summary. Exits 0 when everything passed, 1 when any check\n" +
		"failed, 2 when interrupted.",
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().DurationVar(&verifyOpts.timeout, "timeout", execcheck.DefaultTimeout, "per-check diagnostic timeout")
	verifyCmd.Flags().DurationVar(&verifyOpts.settle, "settle", harness.DefaultSettle, "wait after stopping a service before probing its device")
	verifyCmd.Flags().StringVar(&verifyOpts.leftHand, "left-hand", "192.168.123.211:502", "left hand controller Modbus-TCP endpoint")
	verifyCmd.Flags().StringVar(&verifyOpts.rightHand, "right-hand", "192.168.123.212:502", "right hand controller Modbus-TCP endpoint")
	verifyCmd.Flags().StringVar(&verifyOpts.cameraService, "camera-service", "camera-server.service", "service that owns the cameras while streaming")
	verifyCmd.Flags().StringVar(&verifyOpts.handService, "hand-service", "hand-control.service", "service that drives the hands")
	verifyCmd.Flags().StringVar(&verifyOpts.egoResolution, "ego-resolution", "720p", "capture mode for the ego camera check")
	verifyCmd.Flags().StringArrayVar(&verifyOpts.skip, "skip", nil, "skip steps whose name contains this string (repeatable)")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	h := &harness.Harness{
		Steps:    buildSteps(verifyOpts),
		Services: []string{verifyOpts.cameraService, verifyOpts.handService},
		Manager:  servicectl.NewSystemd(),
		Settle:   verifyOpts.settle,
	}

	_, verdict := h.Run(ctx)
	if code := verdict.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}

// buildSteps assembles the fixed verification sequence. Order matters:
// cheap presence checks first, then the camera frame grabs that need
// the camera server stopped, then the hands.
func buildSteps(opts verifyOptions) []harness.Step {
	runner := execcheck.SystemRunner{}

	steps := []harness.Step{
		{
			Name:  "device: /dev/video0",
			Check: &devcheck.Check{Path: "/dev/video0", CharDevice: true, FS: devcheck.OSFileSystem{}},
		},
		{
			Name: "sdk: zed",
			Check: &sdkcheck.Check{
				Name:       "zed",
				Tool:       "ZED_Diagnostic",
				MinVersion: &version.Version{Major: 4},
				Timeout:    opts.timeout,
				Runner:     runner,
			},
		},
		{
			Name: "camera: ego",
			Check: &camcheck.Check{
				Name:       "ego",
				Probe:      "zed_probe",
				Resolution: opts.egoResolution,
				Timeout:    opts.timeout,
				Runner:     runner,
			},
			ExclusiveService: opts.cameraService,
		},
		{
			Name: "camera: head",
			Check: &camcheck.Check{
				Name:    "head",
				Probe:   "rs_probe",
				Timeout: opts.timeout,
				Runner:  runner,
			},
			ExclusiveService: opts.cameraService,
		},
		{
			Name: "hand: left",
			Check: &handcheck.Check{
				Name:    "left",
				Address: opts.leftHand,
				Timeout: opts.timeout,
				Dialer:  handcheck.NetDialer{},
				Runner:  runner,
			},
		},
		{
			Name: "hand: right",
			Check: &handcheck.Check{
				Name:    "right",
				Address: opts.rightHand,
				Timeout: opts.timeout,
				Dialer:  handcheck.NetDialer{},
				Runner:  runner,
			},
		},
	}

	return filterSteps(steps, opts.skip)
}

func filterSteps(steps []harness.Step, skip []string) []harness.Step {
	if len(skip) == 0 {
		return steps
	}
	kept := make([]harness.Step, 0, len(steps))
	for _, step := range steps {
		if !skipStep(step.Name, skip) {
			kept = append(kept, step)
		}
	}
	return kept
}

func skipStep(name string, skip []string) bool {
	for _, s := range skip {
		if s != "" && strings.Contains(name, s) {
			return true
		}
	}
	return false
}
