package main

import (
	"github.com/spf13/cobra"

	"github.com/robostack/rigcheck/pkg/devcheck"
)

var deviceChar bool

var deviceCmd = &cobra.Command{
	Use:   "device <path>",
	Short: "Check that a device node exists and is readable",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeviceCheck,
}

func init() {
	deviceCmd.Flags().BoolVar(&deviceChar, "char", false, "require a character device node")
	rootCmd.AddCommand(deviceCmd)
}

func runDeviceCheck(cmd *cobra.Command, args []string) error {
	c := &devcheck.Check{
		Path:       args[0],
		CharDevice: deviceChar,
		FS:         devcheck.OSFileSystem{},
	}

	return runCheck(c)
}
