package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/robostack/rigcheck/pkg/camcheck"
	"github.com/robostack/rigcheck/pkg/execcheck"
)

var (
	cameraProbe       string
	cameraResolution  string
	cameraFrames      int
	cameraSerial      string
	cameraTimeout     time.Duration
	cameraStopService string
	cameraSettle      time.Duration
)

var cameraCmd = &cobra.Command{
	Use:   "camera <label>",
	Short: "Check that a camera opens and delivers frames",
	Args:  cobra.ExactArgs(1),
	RunE:  runCameraCheck,
}

func init() {
	cameraCmd.Flags().StringVar(&cameraProbe, "probe", camcheck.DefaultProbe, "camera probe program")
	cameraCmd.Flags().StringVar(&cameraResolution, "resolution", "", "capture mode, e.g. 720p")
	cameraCmd.Flags().IntVar(&cameraFrames, "frames", camcheck.DefaultFrames, "frames to grab")
	cameraCmd.Flags().StringVar(&cameraSerial, "serial", "", "camera serial number for multi-camera rigs")
	cameraCmd.Flags().DurationVar(&cameraTimeout, "timeout", execcheck.DefaultTimeout, "probe timeout")
	cameraCmd.Flags().StringVar(&cameraStopService, "stop-service", "", "stop this service around the check (best-effort)")
	cameraCmd.Flags().DurationVar(&cameraSettle, "settle", time.Second, "wait after stopping the service")
	rootCmd.AddCommand(cameraCmd)
}

func runCameraCheck(cmd *cobra.Command, args []string) error {
	c := &camcheck.Check{
		Name:       args[0],
		Probe:      cameraProbe,
		Resolution: cameraResolution,
		Frames:     cameraFrames,
		Serial:     cameraSerial,
		Timeout:    cameraTimeout,
		Runner:     execcheck.SystemRunner{},
	}

	if cameraStopService != "" {
		return runCheckWithService(c, cameraStopService, cameraSettle)
	}
	return runCheck(c)
}
