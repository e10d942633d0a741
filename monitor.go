package buildpulse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jpalmerr/buildpulse/internal/notify"
	"github.com/jpalmerr/buildpulse/internal/poller"
	"github.com/jpalmerr/buildpulse/internal/server"
	"github.com/jpalmerr/buildpulse/internal/stability"
	"github.com/jpalmerr/buildpulse/internal/store"
)

const defaultPollInterval = time.Second

// Monitor polls a set of hosts and tracks whether each one's build is stable.
//
// Monitor is created using [New] with functional options and started with
// [Monitor.Start]. The typical lifecycle is:
//
//	m, err := buildpulse.New(buildpulse.WithHosts(hosts...))
//	if err != nil {
//	    slog.Error("failed to create monitor", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	m.Start(ctx) // blocks until context cancelled
type Monitor struct {
	hosts               []Host
	pollInterval        time.Duration
	timeout             time.Duration
	windowSize          int
	bell                bool
	bellOut             io.Writer
	terminal            *terminalOutput
	listenAddr          string
	renderer            Renderer
	logger              *slog.Logger
	statusCallbacks     []func(StatusResult)
	transitionCallbacks []func(Transition)

	store *store.MemoryStore
}

// New creates a new [Monitor] with the given options.
//
// At least one host must be configured via [WithHost] or [WithHosts], and
// host names must be unique. Other options have defaults:
//   - Poll interval: 1 second
//   - Stability window: 5
//   - Bell: enabled, written to standard output
//   - Timeout: each host's own poll interval, capped at 10 seconds
//
// Returns an error if no hosts are configured or if any option is invalid.
func New(opts ...Option) (*Monitor, error) {
	cfg := &monitorConfig{
		hosts:        []Host{},
		pollInterval: defaultPollInterval,
		windowSize:   stability.DefaultWindowSize,
		bell:         true,
		bellOut:      os.Stdout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.hosts) == 0 {
		return nil, errors.New("at least one host is required")
	}

	seen := make(map[string]bool, len(cfg.hosts))
	for _, h := range cfg.hosts {
		if seen[h.name] {
			return nil, fmt.Errorf("duplicate host name: %q", h.name)
		}
		seen[h.name] = true
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	bellOut := cfg.bellOut
	var terminal *terminalOutput
	if f, ok := bellOut.(*os.File); ok {
		terminal = newTerminalOutput(f)
		bellOut = terminal
	}

	return &Monitor{
		hosts:               cfg.hosts,
		pollInterval:        cfg.pollInterval,
		timeout:             cfg.timeout,
		windowSize:          cfg.windowSize,
		bell:                cfg.bell,
		bellOut:             bellOut,
		terminal:            terminal,
		listenAddr:          cfg.listenAddr,
		renderer:            cfg.renderer,
		logger:              logger,
		statusCallbacks:     cfg.statusCallbacks,
		transitionCallbacks: cfg.transitionCallbacks,
		store:               store.NewMemoryStore(),
	}, nil
}

// Start begins polling every host and, if configured, serving the status API
// and running the renderer.
//
// Start is a blocking call that runs until ctx is cancelled or the renderer
// returns. Each host is polled immediately, then at its interval, on its own
// goroutine; a slow or failing host never delays another.
//
// Returns nil on graceful shutdown. Returns an error if the status API fails
// to start or the renderer fails.
func (m *Monitor) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	m.logger.Info("buildpulse starting",
		"host_count", len(m.hosts),
		"interval", m.pollInterval.String(),
		"stability_window", m.windowSize,
		"bell", m.bell,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if m.listenAddr != "" {
		api := server.NewServer(m.store, m.listenAddr, m.logger)
		if err := api.Start(ctx); err != nil {
			return fmt.Errorf("failed to start status api: %w", err)
		}
	}

	scheduler := poller.NewScheduler(m.pollerHosts(), m.store, poller.SchedulerConfig{
		Interval:   m.pollInterval,
		Timeout:    m.timeout,
		WindowSize: m.windowSize,
		Sink:       m.sink(),
		OnResult:   m.dispatch,
		Logger:     m.logger,
	})
	scheduler.Start(ctx)

	g, gctx := errgroup.WithContext(ctx)
	if m.renderer != nil {
		g.Go(func() error {
			// the user quitting the dashboard stops the monitor
			defer cancel()
			if err := m.renderer.Render(gctx, m); err != nil {
				return fmt.Errorf("renderer: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})

	err := g.Wait()
	m.logger.Info("buildpulse stopped")
	return err
}

// Hosts returns a copy of the configured hosts.
func (m *Monitor) Hosts() []Host {
	cp := make([]Host, len(m.hosts))
	copy(cp, m.hosts)
	return cp
}

// PollInterval returns the configured default poll interval.
func (m *Monitor) PollInterval() time.Duration {
	return m.pollInterval
}

// StabilityWindow returns the configured stability window size.
func (m *Monitor) StabilityWindow() int {
	return m.windowSize
}

// Status returns the latest recorded status of the named host. The second
// return value is false if the host has not been polled yet.
func (m *Monitor) Status(name string) (StatusResult, bool) {
	s, ok := m.store.Get(name)
	if !ok {
		return StatusResult{}, false
	}
	return fromHealthStatus(s), true
}

// Statuses returns the latest status of every polled host in configured
// order. Hosts not yet polled are omitted.
func (m *Monitor) Statuses() []StatusResult {
	snap := m.store.Snapshot()
	out := make([]StatusResult, 0, len(snap))
	for _, h := range m.hosts {
		if s, ok := snap[h.name]; ok {
			out = append(out, fromHealthStatus(s))
		}
	}
	return out
}

func (m *Monitor) hostNames() []string {
	names := make([]string, len(m.hosts))
	for i, h := range m.hosts {
		names[i] = h.name
	}
	return names
}

// pollerHosts converts hosts to the poller format.
func (m *Monitor) pollerHosts() []poller.HostInfo {
	out := make([]poller.HostInfo, len(m.hosts))
	for i, h := range m.hosts {
		out[i] = poller.HostInfo{
			Name:     h.name,
			URL:      h.url,
			Interval: h.interval,
			Timeout:  h.timeout,
		}
	}
	return out
}

// dashboardOutput returns the writer a terminal dashboard should draw
// through, or nil to let the program use standard output directly. When the
// bell also rings on standard output both share one serialized writer.
func (m *Monitor) dashboardOutput() *terminalOutput {
	if m.terminal != nil && m.terminal.f == os.Stdout {
		return m.terminal
	}
	return nil
}

// sink returns the notification sink for transitions.
func (m *Monitor) sink() notify.Sink {
	if !m.bell {
		return notify.Discard
	}
	return notify.NewBellSink(m.bellOut)
}

// dispatch runs the registered callbacks for one recorded poll. It is called
// on the polled host's goroutine after the store update.
func (m *Monitor) dispatch(r poller.Result) {
	if len(m.statusCallbacks) > 0 {
		result := toStatusResult(r)
		for _, cb := range m.statusCallbacks {
			invokeCallbackSafe(cb, result, result.HostName, m.logger)
		}
	}

	if r.Transition != nil && len(m.transitionCallbacks) > 0 {
		tr := toTransition(*r.Transition)
		for _, cb := range m.transitionCallbacks {
			invokeCallbackSafe(cb, tr, tr.HostName, m.logger)
		}
	}
}

// invokeCallbackSafe calls a callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate.
func invokeCallbackSafe[T any](cb func(T), v T, host string, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"host", host,
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(v)
}
