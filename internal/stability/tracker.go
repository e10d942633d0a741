package stability

import (
	"time"

	"github.com/jpalmerr/buildpulse/internal/health"
)

// Tracker holds the stability window of a single host.
//
// A Tracker is owned by the host's poll loop and is not safe for concurrent
// use. The window is allocated on the first observed build.
type Tracker struct {
	capacity int
	window   *Window
}

// NewTracker creates a Tracker whose window holds capacity builds.
// If capacity <= 0, DefaultWindowSize is used.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &Tracker{capacity: capacity}
}

// Observe records a build timestamp and returns the resulting verdict.
func (t *Tracker) Observe(build time.Time) health.BuildStability {
	if t.window == nil {
		t.window = NewWindow(t.capacity)
	}
	t.window.Push(build)

	return health.BuildStability{
		IsStable:     t.window.Saturated() && t.window.Homogeneous(),
		RecentBuilds: t.window.Values(),
	}
}

// NoSignal returns the verdict reported for a cycle without a build
// timestamp. The stored window is left untouched.
func (t *Tracker) NoSignal() health.BuildStability {
	return health.BuildStability{
		IsStable:     false,
		RecentBuilds: []time.Time{},
	}
}

// History returns the retained builds, oldest first.
func (t *Tracker) History() []time.Time {
	if t.window == nil {
		return []time.Time{}
	}
	return t.window.Values()
}

// Capacity returns the configured window size.
func (t *Tracker) Capacity() int {
	return t.capacity
}
