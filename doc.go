// Package buildpulse monitors a fleet of HTTP hosts and reports, per host,
// whether it is reachable and whether the build it serves has settled.
//
// Each host exposes an endpoint returning JSON with a top-level "buildAt"
// RFC 3339 timestamp. A host is stable once the same timestamp has been
// seen on a full window of consecutive successful polls, which is how a
// rolling deploy is seen to have finished.
//
// # Quick Start
//
//	api, _ := buildpulse.NewHost("api", "https://api.example.com/build")
//	m, _ := buildpulse.New(buildpulse.WithHost(api))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	m.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
//	m, err := buildpulse.New(
//	    buildpulse.WithHosts(api, web),
//	    buildpulse.WithPollInterval(2*time.Second),
//	    buildpulse.WithStabilityWindow(10),
//	    buildpulse.WithBell(false),
//	    buildpulse.WithRenderer(buildpulse.TerminalRenderer{Title: "prod"}),
//	)
//
// Hosts can override the poll interval and request timeout:
//
//	web, err := buildpulse.NewHost("web", "https://web.example.com/build",
//	    buildpulse.WithHostInterval(5*time.Second),
//	    buildpulse.WithHostTimeout(2*time.Second),
//	)
//
// # States and transitions
//
// Every recorded poll classifies the host as [StateUnhealthy] (request
// failed or non-2xx), [StateUnstable] (healthy, build not yet settled) or
// [StateStable]. Entering or leaving [StateStable] rings the terminal bell
// and invokes callbacks registered with [WithTransitionCallback].
// Moving between unhealthy and unstable is silent.
//
// # Architecture
//
// Internal packages (under internal/):
//
//   - poller: HTTP client and one polling goroutine per host
//   - stability: bounded window of recent build timestamps
//   - notify: transition detection and the bell
//   - store: thread-safe latest-status map with pub/sub
//   - tui: the terminal dashboard
//   - server: optional JSON and SSE status API
package buildpulse
