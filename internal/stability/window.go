// Package stability decides whether a host's reported build has settled.
//
// Each host keeps a bounded FIFO of the build timestamps it reported. A
// build is stable once the window is full and every entry equals the newest.
package stability

import "time"

// DefaultWindowSize is the window capacity used when none is configured.
const DefaultWindowSize = 5

// Window is a fixed-capacity ring buffer of build timestamps.
// When the buffer is full, a push evicts the oldest entry.
type Window struct {
	buf  []time.Time
	head int // index of the next write position
	size int // number of valid entries
}

// NewWindow creates a Window holding at most capacity entries.
// If capacity <= 0, DefaultWindowSize is used.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultWindowSize
	}
	return &Window{
		buf: make([]time.Time, capacity),
	}
}

// Push appends t, overwriting the oldest entry if the window is full.
func (w *Window) Push(t time.Time) {
	w.buf[w.head] = t
	w.head = (w.head + 1) % len(w.buf)
	if w.size < len(w.buf) {
		w.size++
	}
}

// Len returns the number of entries held.
func (w *Window) Len() int {
	return w.size
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return len(w.buf)
}

// Saturated reports whether the window holds Cap entries.
func (w *Window) Saturated() bool {
	return w.size == len(w.buf)
}

// Newest returns the most recently pushed entry.
func (w *Window) Newest() (time.Time, bool) {
	if w.size == 0 {
		return time.Time{}, false
	}
	return w.buf[(w.head-1+len(w.buf))%len(w.buf)], true
}

// Homogeneous reports whether every entry equals the newest one.
// Comparison is exact instant equality. An empty window is not homogeneous.
func (w *Window) Homogeneous() bool {
	newest, ok := w.Newest()
	if !ok {
		return false
	}
	for _, t := range w.Values() {
		if !t.Equal(newest) {
			return false
		}
	}
	return true
}

// Values returns the entries oldest first. The slice is a copy.
func (w *Window) Values() []time.Time {
	out := make([]time.Time, w.size)
	// oldest entry sits at (head - size + cap) % cap
	start := (w.head - w.size + len(w.buf)) % len(w.buf)
	for i := 0; i < w.size; i++ {
		out[i] = w.buf[(start+i)%len(w.buf)]
	}
	return out
}
