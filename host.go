package buildpulse

import (
	"errors"
	"net/url"
	"time"
)

// Host is a named endpoint that reports its build timestamp.
//
// Host is immutable after creation via [NewHost]. The name identifies the
// host in the dashboard, the status store and the logs, so it must be unique
// within a [Monitor].
type Host struct {
	name     string
	url      string
	interval time.Duration
	timeout  time.Duration
}

// Name returns the host's display name.
func (h Host) Name() string {
	return h.name
}

// URL returns the URL polled for this host.
func (h Host) URL() string {
	return h.url
}

// Interval returns the host's custom polling interval.
// Returns 0 if no custom interval was specified, meaning the monitor-wide
// interval configured via [WithPollInterval] is used.
func (h Host) Interval() time.Duration {
	return h.interval
}

// Timeout returns the host's custom request timeout, or 0 for the
// monitor-wide timeout.
func (h Host) Timeout() time.Duration {
	return h.timeout
}

// NewHost creates a [Host] with the given name, URL, and options.
//
// The rawURL parameter must be an absolute http:// or https:// URL.
//
// Returns an error if the name is empty or the URL is invalid.
//
// Example:
//
//	h, err := buildpulse.NewHost("api", "https://api.example.com/health",
//	    buildpulse.WithHostInterval(5*time.Second),
//	)
func NewHost(name, rawURL string, opts ...HostOption) (Host, error) {
	if name == "" {
		return Host{}, errors.New("host name cannot be empty")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return Host{}, errors.New("invalid URL: " + err.Error())
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return Host{}, errors.New("URL must have a scheme (http:// or https://)")
	}
	if parsedURL.Host == "" {
		return Host{}, errors.New("URL must have a host")
	}

	cfg := &hostConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Host{}, err
		}
	}

	return Host{
		name:     name,
		url:      rawURL,
		interval: cfg.interval,
		timeout:  cfg.timeout,
	}, nil
}

// hostConfig holds mutable state during host construction.
type hostConfig struct {
	interval time.Duration
	timeout  time.Duration
}

// HostOption configures a [Host] during construction.
type HostOption func(*hostConfig) error

// WithHostInterval sets a custom polling interval for this host, overriding
// the monitor-wide interval.
//
// Returns an error if the duration is zero or negative.
func WithHostInterval(d time.Duration) HostOption {
	return func(cfg *hostConfig) error {
		if d <= 0 {
			return errors.New("host interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithHostTimeout sets the HTTP request timeout for this host.
//
// Returns an error if the duration is zero or negative.
func WithHostTimeout(d time.Duration) HostOption {
	return func(cfg *hostConfig) error {
		if d <= 0 {
			return errors.New("host timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}
