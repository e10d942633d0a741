// Package mockbuild serves fake build endpoints for demos and manual testing.
//
// Each host path reports a "buildAt" timestamp. Depending on the mode the
// timestamp never changes, changes on every request, or changes on a timer
// to imitate a rolling deploy.
package mockbuild

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Mode selects how build timestamps evolve.
type Mode string

const (
	// ModeFixed reports the same build forever.
	ModeFixed Mode = "fixed"

	// ModeNow reports the current time on every request, so the host never
	// becomes stable.
	ModeNow Mode = "now"

	// ModeRotate reports a new build every Every.
	ModeRotate Mode = "rotate"
)

// Config configures a [Handler].
type Config struct {
	Mode Mode

	// Every is the deploy period in ModeRotate. Each host gets a random
	// offset so deploys do not line up.
	Every time.Duration

	// Field is the JSON field name. Defaults to "buildAt"; "buildedAt"
	// reproduces a misspelled field.
	Field string

	// FailRate is the probability, 0 to 1, of answering 500.
	FailRate float64

	// Latency is the maximum random delay added to each response.
	Latency time.Duration
}

type hostState struct {
	build  time.Time
	nextAt time.Time
}

// Handler serves /<host> paths, keeping one build per host.
type Handler struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	hosts map[string]*hostState
	rng   *rand.Rand
}

// NewHandler creates a [Handler].
func NewHandler(cfg Config, logger *slog.Logger) *Handler {
	if cfg.Mode == "" {
		cfg.Mode = ModeFixed
	}
	if cfg.Field == "" {
		cfg.Field = "buildAt"
	}
	if cfg.Every <= 0 {
		cfg.Every = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		hosts:  make(map[string]*hostState),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	host := strings.Trim(r.URL.Path, "/")
	if host == "" {
		host = "default"
	}

	h.mu.Lock()
	delay := time.Duration(0)
	if h.cfg.Latency > 0 {
		delay = time.Duration(h.rng.Int63n(int64(h.cfg.Latency)))
	}
	fail := h.cfg.FailRate > 0 && h.rng.Float64() < h.cfg.FailRate
	build := h.buildFor(host)
	h.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if fail {
		http.Error(w, "simulated failure", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]string{h.cfg.Field: build.UTC().Format(time.RFC3339Nano)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

// buildFor returns the current build of host. Callers hold h.mu.
func (h *Handler) buildFor(host string) time.Time {
	now := h.now()

	if h.cfg.Mode == ModeNow {
		return now
	}

	st, ok := h.hosts[host]
	if !ok {
		st = &hostState{build: now.Truncate(time.Second)}
		if h.cfg.Mode == ModeRotate {
			st.nextAt = now.Add(time.Duration(h.rng.Int63n(int64(h.cfg.Every))) + h.cfg.Every/2)
		}
		h.hosts[host] = st
	}

	if h.cfg.Mode == ModeRotate && !now.Before(st.nextAt) {
		old := st.build
		st.build = now.Truncate(time.Second)
		st.nextAt = now.Add(h.cfg.Every)
		h.logger.Info("deployed", "host", host, "from", old.Format(time.RFC3339), "to", st.build.Format(time.RFC3339))
	}

	return st.build
}
