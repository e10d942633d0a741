// Package config loads buildpulse configuration files.
//
// This package enables running buildpulse as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
// TOML is the default format; a .yaml or .yml extension selects YAML.
//
// Example configuration:
//
//	interval = 1000          # ms between polls
//	stability_window = 5
//	enable_bell = true
//
//	[[hosts]]
//	name = "api"
//	url = "https://api.example.com/build"
//
//	[[hosts]]
//	name = "web"
//	url = "https://${WEB_HOST:-web.example.com}/build"
//	interval = 5000
//
// The top-level interval, stability_window and enable_bell may be
// overridden with BUILDPULSE_INTERVAL, BUILDPULSE_STABILITY_WINDOW and
// BUILDPULSE_ENABLE_BELL.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "BUILDPULSE"

const (
	defaultInterval        = 1000
	defaultStabilityWindow = 5
	defaultRefresh         = 500
)

// Config is the root configuration structure.
//
// Durations are integer milliseconds. Use [Load] or [Parse] to create a
// Config; both apply defaults and validate.
type Config struct {
	// Title is the dashboard title. Defaults to "buildpulse".
	Title string `mapstructure:"title" yaml:"title"`

	// Interval is the time between polls of each host, in milliseconds.
	Interval int `mapstructure:"interval" yaml:"interval"`

	// StabilityWindow is how many consecutive identical build timestamps
	// make a host stable.
	StabilityWindow int `mapstructure:"stability_window" yaml:"stability_window"`

	// EnableBell rings the terminal bell on stability transitions.
	EnableBell bool `mapstructure:"enable_bell" yaml:"enable_bell"`

	// Timeout is the per-request timeout in milliseconds. Zero means each
	// host's own interval, capped at 10 seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`

	// Refresh is the dashboard redraw period in milliseconds.
	Refresh int `mapstructure:"refresh" yaml:"refresh"`

	// Hosts lists the monitored hosts in display order.
	Hosts []HostConfig `mapstructure:"hosts" yaml:"hosts"`
}

// HostConfig defines a single monitored host.
type HostConfig struct {
	// Name is the display name and must be unique.
	Name string `mapstructure:"name" yaml:"name"`

	// URL returns JSON carrying the build timestamp.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `mapstructure:"url" yaml:"url"`

	// Interval overrides the global interval for this host, in milliseconds.
	Interval int `mapstructure:"interval" yaml:"interval,omitempty"`

	// Timeout overrides the global request timeout, in milliseconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

// PollInterval returns Interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return millis(c.Interval)
}

// RequestTimeout returns Timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return millis(c.Timeout)
}

// RefreshInterval returns Refresh as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return millis(c.Refresh)
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// Load reads and parses a configuration file.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (BUILDPULSE_ prefix)
//  2. Configuration file
//  3. Default values
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, formatFor(path))
}

// Parse parses configuration data in the given format ("toml" or "yaml").
//
// Environment variables are expanded in host URLs.
func Parse(data []byte, format string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(format)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", format, err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// formatFor picks the viper config type from a file extension.
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "buildpulse")
	v.SetDefault("interval", defaultInterval)
	v.SetDefault("stability_window", defaultStabilityWindow)
	v.SetDefault("enable_bell", true)
	v.SetDefault("timeout", 0)
	v.SetDefault("refresh", defaultRefresh)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		sub := envVarPattern.FindStringSubmatch(match)
		name := sub[1]
		hasDefault := sub[2] != ""

		value, exists := os.LookupEnv(name)
		if !exists {
			if hasDefault {
				return sub[3]
			}
			firstErr = fmt.Errorf("environment variable %q is not set", name)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// expandAndValidate expands environment variables, fills derived defaults
// and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", c.Interval)
	}
	if c.StabilityWindow < 1 {
		return fmt.Errorf("stability_window must be at least 1, got %d", c.StabilityWindow)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got %d", c.Timeout)
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("refresh must be positive, got %d", c.Refresh)
	}

	if len(c.Hosts) == 0 {
		return errors.New("at least one host must be defined")
	}

	seen := make(map[string]bool, len(c.Hosts))
	for i := range c.Hosts {
		h := &c.Hosts[i]

		if h.Name == "" {
			return fmt.Errorf("hosts[%d]: name is required", i)
		}
		if seen[h.Name] {
			return fmt.Errorf("hosts[%d]: duplicate name %q", i, h.Name)
		}
		seen[h.Name] = true

		if h.URL == "" {
			return fmt.Errorf("hosts[%d] (%s): url is required", i, h.Name)
		}
		expanded, err := expandEnvVars(h.URL)
		if err != nil {
			return fmt.Errorf("hosts[%d] (%s): url: %w", i, h.Name, err)
		}
		h.URL = expanded

		parsedURL, err := url.Parse(h.URL)
		if err != nil {
			return fmt.Errorf("hosts[%d] (%s): invalid url: %w", i, h.Name, err)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("hosts[%d] (%s): url scheme must be http or https, got %q", i, h.Name, parsedURL.Scheme)
		}
		if parsedURL.Host == "" {
			return fmt.Errorf("hosts[%d] (%s): url must have a host", i, h.Name)
		}

		if h.Interval < 0 {
			return fmt.Errorf("hosts[%d] (%s): interval cannot be negative, got %d", i, h.Name, h.Interval)
		}
		if h.Timeout < 0 {
			return fmt.Errorf("hosts[%d] (%s): timeout cannot be negative, got %d", i, h.Name, h.Timeout)
		}
	}

	return nil
}
