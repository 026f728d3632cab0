package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/robostack/rigcheck/pkg/execcheck"
	"github.com/robostack/rigcheck/pkg/sdkcheck"
	"github.com/robostack/rigcheck/pkg/version"
)

var (
	sdkName       string
	sdkMinVersion string
	sdkVersionCmd string
	sdkTimeout    time.Duration
)

var sdkCmd = &cobra.Command{
	Use:   "sdk <tool>",
	Short: "Check that a vendored SDK tool is installed, optionally gating on version",
	Args:  cobra.ExactArgs(1),
	RunE:  runSDKCheck,
}

func init() {
	sdkCmd.Flags().StringVar(&sdkName, "name", "", "SDK label (default: the tool name)")
	sdkCmd.Flags().StringVar(&sdkMinVersion, "min", "", "minimum version required (inclusive)")
	sdkCmd.Flags().StringVar(&sdkVersionCmd, "version-cmd", "--version", "arguments that make the tool print its version")
	sdkCmd.Flags().DurationVar(&sdkTimeout, "timeout", execcheck.DefaultTimeout, "version command timeout")
	rootCmd.AddCommand(sdkCmd)
}

func runSDKCheck(cmd *cobra.Command, args []string) error {
	tool := args[0]
	name := sdkName
	if name == "" {
		name = tool
	}

	min, err := version.ParseOptional(sdkMinVersion)
	if err != nil {
		return fmt.Errorf("invalid --min version: %w", err)
	}

	c := &sdkcheck.Check{
		Name:        name,
		Tool:        tool,
		VersionArgs: strings.Fields(sdkVersionCmd),
		MinVersion:  min,
		Timeout:     sdkTimeout,
		Runner:      execcheck.SystemRunner{},
	}

	return runCheck(c)
}
