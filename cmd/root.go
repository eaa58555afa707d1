package cmd

import (
	"fmt"
	"os"

	"github.com/marginote/annotator-api/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "annotator-api",
	Short: "Local-first media annotation engine",
	Long: `Annotator API - a local-first annotation engine for time-based media

Annotations are millisecond-precise points or ranges on a media timeline,
stored durably in SQLite and queryable by playback time through a
second-bucket index.

Features:
  • Point and range annotations with optional spatial overlays
  • O(1) active-annotation lookup at any playback time
  • WebVTT, SRT and JSON export with bit-stable output
  • Stable media identity derived from file name, size and mtime`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	// version and help never touch config
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
