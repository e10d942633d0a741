// Package main is the entry point for the buildpulse CLI.
//
// buildpulse can be run either as a library (SDK) or as a standalone binary
// with a TOML or YAML configuration file. This CLI provides the standalone
// binary approach.
//
// Usage:
//
//	buildpulse watch -c config.toml    # Start the dashboard
//	buildpulse validate -c config.toml # Validate configuration
//	buildpulse version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "buildpulse",
	Short: "Watch a fleet of hosts until their builds settle",
	Long: `buildpulse polls HTTP hosts that report a "buildAt" timestamp and shows,
per host, whether it is reachable and whether its build has been the same
for a full window of polls. The terminal bell rings when a host becomes
stable or stops being stable.

Quick start:
  1. Create a config file (config.toml)
  2. Run: buildpulse watch -c config.toml

Example config:
  interval = 1000
  stability_window = 5
  enable_bell = true

  [[hosts]]
  name = "api"
  url = "https://api.example.com/build"`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this buildpulse binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "buildpulse %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
