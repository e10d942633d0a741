package poller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/buildpulse/internal/health"
	"github.com/jpalmerr/buildpulse/internal/notify"
	"github.com/jpalmerr/buildpulse/internal/stability"
	"github.com/jpalmerr/buildpulse/internal/store"
)

// maxDerivedTimeout caps the request timeout derived from a host's interval.
const maxDerivedTimeout = 10 * time.Second

// HostInfo contains the configuration needed to poll a single host.
type HostInfo struct {
	// Name identifies the host; it is the store key.
	Name string

	// URL is the target URL to GET.
	URL string

	// Interval is the custom polling interval for this host.
	// If 0, the scheduler's global interval is used.
	Interval time.Duration

	// Timeout is the per-request timeout. If 0, the scheduler's is used.
	Timeout time.Duration
}

// Result is everything one poll cycle produced.
type Result struct {
	// Status is the record written to the store.
	Status health.HealthStatus

	// Observation is the raw classification of the response.
	Observation health.Observation

	// Transition is set when the cycle gained or lost stability.
	Transition *notify.Transition
}

// Worker polls one host forever.
//
// A Worker owns its host's stability tracker and transition detector; no
// other goroutine touches them. The only shared state it writes is the
// store.
type Worker struct {
	host     HostInfo
	interval time.Duration
	timeout  time.Duration
	client   *Client
	tracker  *stability.Tracker
	detector *notify.Detector
	store    store.Store
	sink     notify.Sink
	onResult func(Result)
	logger   *slog.Logger
}

// WorkerConfig holds the dependencies of a [Worker].
type WorkerConfig struct {
	Interval   time.Duration
	Timeout    time.Duration
	WindowSize int
	Client     *Client
	Store      store.Store
	Sink       notify.Sink
	OnResult   func(Result)
	Logger     *slog.Logger
}

// NewWorker creates a [Worker] for host. Host-level Interval and Timeout
// override the values in cfg. With no timeout set anywhere, the host's own
// interval is used, capped at 10 seconds.
func NewWorker(host HostInfo, cfg WorkerConfig) *Worker {
	interval := cfg.Interval
	if host.Interval > 0 {
		interval = host.Interval
	}
	timeout := cfg.Timeout
	if host.Timeout > 0 {
		timeout = host.Timeout
	}
	if timeout <= 0 {
		timeout = min(interval, maxDerivedTimeout)
	}
	client := cfg.Client
	if client == nil {
		client = NewClient()
	}
	sink := cfg.Sink
	if sink == nil {
		sink = notify.Discard
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Worker{
		host:     host,
		interval: interval,
		timeout:  timeout,
		client:   client,
		tracker:  stability.NewTracker(cfg.WindowSize),
		detector: notify.NewDetector(host.Name),
		store:    cfg.Store,
		sink:     sink,
		onResult: cfg.OnResult,
		logger:   logger.With("host", host.Name),
	}
}

// Run polls immediately and then once per interval until ctx is cancelled.
// A failed or panicking cycle never stops the loop.
func (w *Worker) Run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	w.safeCycle(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.safeCycle(ctx)
		}
	}
}

// PollOnce performs exactly one poll cycle: fetch, update the stability
// window, detect a transition, and store the new status.
//
// The second return value is false when ctx was cancelled mid-request; in
// that case nothing is recorded.
func (w *Worker) PollOnce(ctx context.Context) (Result, bool) {
	resp := w.client.Fetch(ctx, w.host.URL, w.timeout)
	if ctx.Err() != nil {
		return Result{}, false
	}
	obs := Observe(resp, time.Now())

	var verdict health.BuildStability
	if obs.Healthy() && obs.BuildAt != nil {
		verdict = w.tracker.Observe(*obs.BuildAt)
	} else {
		verdict = w.tracker.NoSignal()
	}

	status := health.NewHealthStatus(w.host.Name, w.host.URL, obs, verdict)
	result := Result{Status: status, Observation: obs}

	if tr, fired := w.detector.Evaluate(status); fired {
		w.sink.Notify(tr)
		result.Transition = &tr
	}

	if w.store != nil {
		w.store.Update(status)
	}

	w.log(result)
	return result, true
}

// safeCycle runs one cycle with panic recovery so one bad cycle cannot end
// the host's loop.
func (w *Worker) safeCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("poll cycle panic",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()

	result, ok := w.PollOnce(ctx)
	if ok && w.onResult != nil {
		w.onResult(result)
	}
}

func (w *Worker) log(r Result) {
	obs := r.Observation
	attrs := []any{
		"url", w.host.URL,
		"state", r.Status.State().String(),
		"latency_ms", obs.Latency.Milliseconds(),
	}

	switch {
	case r.Status.ErrorMessage != nil:
		w.logger.Warn("poll failed", append(attrs, "error", *r.Status.ErrorMessage)...)
	case obs.ParseError != nil:
		// stays off the dashboard; operators see it here
		w.logger.Warn("build timestamp unavailable", append(attrs, "error", obs.ParseError.Error())...)
	default:
		w.logger.Debug("poll completed", attrs...)
	}

	if tr := r.Transition; tr != nil {
		msg := "stability lost"
		if tr.Gained() {
			msg = "stability gained"
		}
		w.logger.Info(msg, "from", tr.From.String(), "to", tr.To.String())
	}
}

// Host returns the host this worker polls.
func (w *Worker) Host() HostInfo {
	return w.host
}

// Interval returns the effective polling interval.
func (w *Worker) Interval() time.Duration {
	return w.interval
}

// Timeout returns the effective per-request timeout.
func (w *Worker) Timeout() time.Duration {
	return w.timeout
}
