// Package notify detects stability transitions and signals them.
//
// A [Detector] remembers the last classification of one host. Only changes
// into or out of [health.StateStable] produce a [Transition]; moves between
// unhealthy and unstable are silent. Signalled transitions are handed to a
// [Sink], typically a [BellSink] ringing the terminal bell.
package notify

import (
	"io"
	"sync"
	"time"

	"github.com/jpalmerr/buildpulse/internal/health"
)

// Transition describes a change of classification that gained or lost
// stability.
type Transition struct {
	Host string
	From health.State
	To   health.State
	At   time.Time
}

// Gained reports whether the host became stable.
func (t Transition) Gained() bool {
	return t.To == health.StateStable
}

// Lost reports whether the host stopped being stable.
func (t Transition) Lost() bool {
	return t.From == health.StateStable
}

// Detector tracks the previous classification of a single host.
// It is owned by the host's poll loop and is not safe for concurrent use.
type Detector struct {
	host string
	last health.State
}

// NewDetector creates a Detector whose host starts out unhealthy.
func NewDetector(host string) *Detector {
	return &Detector{host: host, last: health.StateUnhealthy}
}

// Evaluate classifies status and reports a transition when stability was
// gained or lost. The new classification is always retained.
func (d *Detector) Evaluate(status health.HealthStatus) (Transition, bool) {
	prev := d.last
	next := health.Classify(status)
	d.last = next

	if prev == next {
		return Transition{}, false
	}
	if prev != health.StateStable && next != health.StateStable {
		return Transition{}, false
	}
	return Transition{Host: d.host, From: prev, To: next, At: status.LastCheck}, true
}

// Last returns the most recently evaluated classification.
func (d *Detector) Last() health.State {
	return d.last
}

// Sink receives notification pulses. Implementations must be safe for
// concurrent use; Notify has no failure mode visible to the caller.
type Sink interface {
	Notify(Transition)
}

// BellSink writes one BEL character per transition.
type BellSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBellSink creates a [BellSink] writing to w.
func NewBellSink(w io.Writer) *BellSink {
	return &BellSink{w: w}
}

// Notify rings the bell. Write errors are ignored.
func (b *BellSink) Notify(Transition) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte{'\a'})
}

// FuncSink adapts a function to [Sink].
type FuncSink func(Transition)

// Notify calls f(t).
func (f FuncSink) Notify(t Transition) {
	f(t)
}

// Discard is a [Sink] that drops every transition.
var Discard Sink = FuncSink(func(Transition) {})

// Multi returns a [Sink] forwarding each transition to every sink in order.
func Multi(sinks ...Sink) Sink {
	return FuncSink(func(t Transition) {
		for _, s := range sinks {
			s.Notify(t)
		}
	})
}
