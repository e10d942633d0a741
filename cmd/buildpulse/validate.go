package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/buildpulse/config"
)

// validateCmd validates a config file without starting to poll.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a buildpulse configuration file without polling anything.

This command parses the file, applies environment overrides and defaults,
expands environment variables in URLs, and validates all fields. With
--print the effective configuration is written as YAML.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  buildpulse validate -c config.toml
  buildpulse validate -c config.toml --print`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	validateCmd.Flags().Bool("print", false, "print the effective configuration as YAML")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	printCfg, _ := cmd.Flags().GetBool("print")

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()

	if printCfg {
		data, err := config.Dump(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	bell := "off"
	if cfg.EnableBell {
		bell = "on"
	}

	timeout := "per host interval, max 10s"
	if cfg.Timeout > 0 {
		timeout = cfg.RequestTimeout().String()
	}

	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Interval:         %s\n", cfg.PollInterval())
	fmt.Fprintf(out, "  Timeout:          %s\n", timeout)
	fmt.Fprintf(out, "  Stability window: %d\n", cfg.StabilityWindow)
	fmt.Fprintf(out, "  Bell:             %s\n", bell)
	fmt.Fprintf(out, "  Hosts:            %d\n", len(cfg.Hosts))

	return nil
}
