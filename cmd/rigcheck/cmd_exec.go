package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/robostack/rigcheck/pkg/execcheck"
)

var (
	execName        string
	execTimeout     time.Duration
	execStopService string
	execSettle      time.Duration
)

var execCmd = &cobra.Command{
	Use:   "exec <program> [args...]",
	Short: "Run any diagnostic program as a check (exit 0 = pass)",
	Long: "Runs the given program and reports [OK] for exit status zero, [FAIL] for\n" +
		"anything else, including a program that cannot be started. Relative paths\n" +
		"containing a separator resolve against the rigcheck binary's directory.",
	Args: cobra.MinimumNArgs(1),
	RunE: runExecCheck,
}

func init() {
	execCmd.Flags().StringVar(&execName, "name", "", "check label (default: the program name)")
	execCmd.Flags().DurationVar(&execTimeout, "timeout", execcheck.DefaultTimeout, "diagnostic timeout")
	execCmd.Flags().StringVar(&execStopService, "stop-service", "", "stop this service around the check (best-effort)")
	execCmd.Flags().DurationVar(&execSettle, "settle", time.Second, "wait after stopping the service")
	rootCmd.AddCommand(execCmd)
}

func runExecCheck(cmd *cobra.Command, args []string) error {
	name := execName
	if name == "" {
		name = "diag: " + args[0]
	}

	c := &execcheck.Check{
		Name:    name,
		Program: args[0],
		Args:    args[1:],
		Timeout: execTimeout,
		Runner:  execcheck.SystemRunner{},
	}

	if execStopService != "" {
		return runCheckWithService(c, execStopService, execSettle)
	}
	return runCheck(c)
}
