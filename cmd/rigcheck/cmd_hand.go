package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/robostack/rigcheck/pkg/execcheck"
	"github.com/robostack/rigcheck/pkg/handcheck"
)

var (
	handName        string
	handDiag        string
	handDialTimeout time.Duration
	handTimeout     time.Duration
)

var handCmd = &cobra.Command{
	Use:   "hand <host:port>",
	Short: "Check a hand controller over Modbus-TCP",
	Args:  cobra.ExactArgs(1),
	RunE:  runHandCheck,
}

func init() {
	handCmd.Flags().StringVar(&handName, "name", "hand", "hand label, e.g. left or right")
	handCmd.Flags().StringVar(&handDiag, "diag", handcheck.DefaultDiag, "hand diagnostic program")
	handCmd.Flags().DurationVar(&handDialTimeout, "dial-timeout", handcheck.DefaultDialTimeout, "reachability probe timeout")
	handCmd.Flags().DurationVar(&handTimeout, "timeout", execcheck.DefaultTimeout, "diagnostic timeout")
	rootCmd.AddCommand(handCmd)
}

func runHandCheck(cmd *cobra.Command, args []string) error {
	c := &handcheck.Check{
		Name:        handName,
		Address:     args[0],
		Diag:        handDiag,
		DialTimeout: handDialTimeout,
		Timeout:     handTimeout,
		Dialer:      handcheck.NetDialer{},
		Runner:      execcheck.SystemRunner{},
	}

	return runCheck(c)
}
