package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "hfsm",
	Short:        "hfsm runs and inspects hierarchical state machines",
	Long:         `hfsm loads state machine definitions (YAML or JSON), drives them on a fixed tick and exposes their structure and event history.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing machine definitions")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file with HFSM_* settings")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides HFSM_LOG_LEVEL")
}
