package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rigcheck",
	Short: "Hardware verification for the robot's onboard compute stack",
	Long: "rigcheck verifies that the robot's cameras, dexterous hands, and vendored\n" +
		"SDKs are installed and answering before the platform is handed to an operator.\n" +
		"Run 'rigcheck verify' for the full sequence, or a subcommand for one check.",
	Version:      Version,
	SilenceUsage: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log best-effort service control and other debug detail to stderr")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
