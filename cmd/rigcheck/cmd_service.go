package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/robostack/rigcheck/pkg/output"
	"github.com/robostack/rigcheck/pkg/servicectl"
)

// ErrServiceInactive is returned when a queried service is not active.
var ErrServiceInactive = errors.New("service inactive")

var serviceCmd = &cobra.Command{
	Use:   "service <unit>",
	Short: "Report whether a background service is active",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceStatus,
}

func init() {
	rootCmd.AddCommand(serviceCmd)
}

func runServiceStatus(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	unit := args[0]
	active, err := servicectl.NewSystemd().IsActive(ctx, unit)
	if err != nil {
		return err
	}

	output.PrintServiceStatus(os.Stdout, servicectl.Status{Unit: unit, Active: active})

	if !active {
		return ErrServiceInactive
	}
	return nil
}
