package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jpalmerr/buildpulse/internal/notify"
	"github.com/jpalmerr/buildpulse/internal/store"
)

// SchedulerConfig holds settings shared by every host's [Worker].
type SchedulerConfig struct {
	// Interval is the default time between polls of a host.
	Interval time.Duration

	// Timeout is the default per-request timeout.
	Timeout time.Duration

	// WindowSize is the stability window capacity.
	WindowSize int

	// Sink receives stability transitions.
	Sink notify.Sink

	// OnResult is called from a host's goroutine after each recorded cycle.
	OnResult func(Result)

	// Logger receives poll events.
	Logger *slog.Logger
}

// Scheduler runs one [Worker] goroutine per host.
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Scheduler struct {
	workers []*Worker
	client  *Client
	logger  *slog.Logger
	cancel  context.CancelFunc
	group   *errgroup.Group

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewScheduler creates a [Scheduler] that writes every host's status to st.
//
// The scheduler must be started with [Scheduler.Start] and stopped with
// [Scheduler.Stop] or by cancelling the context passed to Start.
func NewScheduler(hosts []HostInfo, st store.Store, cfg SchedulerConfig) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := NewClient()

	workers := make([]*Worker, len(hosts))
	for i, h := range hosts {
		workers[i] = NewWorker(h, WorkerConfig{
			Interval:   cfg.Interval,
			Timeout:    cfg.Timeout,
			WindowSize: cfg.WindowSize,
			Client:     client,
			Store:      st,
			Sink:       cfg.Sink,
			OnResult:   cfg.OnResult,
			Logger:     logger,
		})
	}

	return &Scheduler{
		workers: workers,
		client:  client,
		logger:  logger,
	}
}

// Start launches one goroutine per host and returns immediately.
//
// If ctx is nil, context.Background() is used as the parent context.
// Start is idempotent; subsequent calls after the first are no-ops.
// If Stop was called before Start, Start is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, s.cancel = context.WithCancel(ctx)

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range s.workers {
		g.Go(func() error {
			w.Run(gctx)
			return nil
		})
	}
	s.group = g

	s.logger.Info("polling started", "hosts", len(s.workers))
}

// Wait blocks until every worker has returned. It returns immediately if
// the scheduler was never started.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	g := s.group
	s.mu.Unlock()

	if g != nil {
		_ = g.Wait()
	}
}

// Stop cancels all workers and waits for them to return.
//
// In-flight requests are abandoned, not drained. Stop is idempotent and
// safe to call before Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	s.mu.Unlock()

	s.Wait()
	s.client.Close()
}

// Workers returns the per-host workers in host order.
func (s *Scheduler) Workers() []*Worker {
	return append([]*Worker(nil), s.workers...)
}
