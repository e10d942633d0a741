package buildpulse

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

// monitorConfig holds mutable state during Monitor construction.
type monitorConfig struct {
	hosts               []Host
	pollInterval        time.Duration
	timeout             time.Duration
	windowSize          int
	bell                bool
	bellOut             io.Writer
	listenAddr          string
	renderer            Renderer
	logger              *slog.Logger
	statusCallbacks     []func(StatusResult)
	transitionCallbacks []func(Transition)
}

// Option is a function that configures a [Monitor] during construction.
//
// Options return an error if validation fails.
type Option func(*monitorConfig) error

// WithHost adds a single [Host] to the polling list.
//
// Can be called multiple times. At least one host must be configured for
// [New] to succeed.
func WithHost(h Host) Option {
	return func(cfg *monitorConfig) error {
		cfg.hosts = append(cfg.hosts, h)
		return nil
	}
}

// WithHosts adds multiple [Host] values to the polling list, in order.
func WithHosts(hosts ...Host) Option {
	return func(cfg *monitorConfig) error {
		cfg.hosts = append(cfg.hosts, hosts...)
		return nil
	}
}

// WithPollInterval sets how often each host is polled.
// Defaults to 1 second if not specified.
//
// Returns an error if the duration is zero or negative.
func WithPollInterval(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("poll interval must be positive")
		}
		cfg.pollInterval = d
		return nil
	}
}

// WithStabilityWindow sets how many consecutive identical build timestamps
// are required before a host counts as stable. Defaults to 5.
//
// Returns an error if n is less than 1.
func WithStabilityWindow(n int) Option {
	return func(cfg *monitorConfig) error {
		if n < 1 {
			return errors.New("stability window must be at least 1")
		}
		cfg.windowSize = n
		return nil
	}
}

// WithBell enables or disables the terminal bell on stability transitions.
// Enabled by default.
func WithBell(enabled bool) Option {
	return func(cfg *monitorConfig) error {
		cfg.bell = enabled
		return nil
	}
}

// WithNotificationSink sets where the bell character is written.
// Defaults to standard output.
//
// Returns an error if w is nil.
func WithNotificationSink(w io.Writer) Option {
	return func(cfg *monitorConfig) error {
		if w == nil {
			return errors.New("notification sink cannot be nil")
		}
		cfg.bellOut = w
		return nil
	}
}

// WithTimeout sets the per-request timeout for hosts without their own.
// Defaults to the poll interval, capped at 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Monitor.
//
// If not specified, [slog.Default] is used. When a terminal renderer is
// active the logger should not write to the terminal.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *monitorConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithStatusCallback registers a function to be called after every recorded
// poll, once the store holds the new status.
//
// Callbacks run on the polled host's goroutine, so a slow callback delays
// only that host's next poll. They execute in registration order. Panics
// are recovered and logged.
//
// Nil callbacks are silently ignored.
func WithStatusCallback(cb func(StatusResult)) Option {
	return func(cfg *monitorConfig) error {
		if cb == nil {
			return nil
		}
		cfg.statusCallbacks = append(cfg.statusCallbacks, cb)
		return nil
	}
}

// WithTransitionCallback registers a function to be called whenever a host
// becomes stable or stops being stable.
//
// Example:
//
//	m, err := buildpulse.New(
//	    buildpulse.WithHosts(hosts...),
//	    buildpulse.WithTransitionCallback(func(t buildpulse.Transition) {
//	        if t.Gained() {
//	            log.Printf("%s finished deploying", t.HostName)
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithTransitionCallback(cb func(Transition)) Option {
	return func(cfg *monitorConfig) error {
		if cb == nil {
			return nil
		}
		cfg.transitionCallbacks = append(cfg.transitionCallbacks, cb)
		return nil
	}
}

// WithListenAddr serves the JSON status API on addr (e.g. ":8080").
// An empty address disables the API, which is the default.
func WithListenAddr(addr string) Option {
	return func(cfg *monitorConfig) error {
		cfg.listenAddr = addr
		return nil
	}
}

// WithRenderer sets the dashboard renderer. When the renderer returns, the
// monitor stops. A nil renderer runs headless, which is the default.
func WithRenderer(r Renderer) Option {
	return func(cfg *monitorConfig) error {
		cfg.renderer = r
		return nil
	}
}
