package buildpulse

import (
	"errors"
	"time"

	"github.com/jpalmerr/buildpulse/internal/health"
	"github.com/jpalmerr/buildpulse/internal/notify"
	"github.com/jpalmerr/buildpulse/internal/poller"
)

// State classifies a host for display and notification.
type State = health.State

const (
	// StateUnhealthy means the last poll failed or returned a non-2xx status.
	StateUnhealthy = health.StateUnhealthy

	// StateUnstable means the host is healthy but its build timestamp has not
	// been identical for a full window.
	StateUnstable = health.StateUnstable

	// StateStable means the host is healthy and reported the same build
	// timestamp for a full window.
	StateStable = health.StateStable
)

// StatusResult holds the outcome of one recorded poll of a host.
//
// StatusResult values passed to callbacks are copies; modifying them does
// not affect the monitor.
type StatusResult struct {
	// HostName is the name of the polled host.
	HostName string

	// URL is the target URL that was polled.
	URL string

	// State is the classification after this poll.
	State State

	// Healthy reports whether the host answered with a 2xx status.
	Healthy bool

	// BuildAt is the build timestamp reported this poll, nil if none.
	BuildAt *time.Time

	// RecentBuilds is the stability window, oldest first.
	RecentBuilds []time.Time

	// StatusCode is the HTTP status code, zero if no response was received.
	StatusCode int

	// Latency is the time taken to complete the HTTP request.
	Latency time.Duration

	// CheckedAt is when the poll completed.
	CheckedAt time.Time

	// Error describes why the host is unhealthy; nil when healthy.
	Error error

	// ParseError is set when a healthy response carried no usable build
	// timestamp.
	ParseError error
}

// Transition is a change into or out of [StateStable].
type Transition struct {
	HostName string
	From     State
	To       State
	At       time.Time
}

// Gained reports whether the host became stable.
func (t Transition) Gained() bool {
	return t.To == StateStable
}

// Lost reports whether the host stopped being stable.
func (t Transition) Lost() bool {
	return t.From == StateStable
}

// toStatusResult converts a poller result to the public type.
func toStatusResult(r poller.Result) StatusResult {
	s := r.Status.Clone()

	var err error
	if s.ErrorMessage != nil {
		err = errors.New(*s.ErrorMessage)
	}

	return StatusResult{
		HostName:     s.Name,
		URL:          s.URL,
		State:        s.State(),
		Healthy:      s.IsHealthy,
		BuildAt:      s.BuildAt,
		RecentBuilds: s.BuildStability.RecentBuilds,
		StatusCode:   s.StatusCode,
		Latency:      r.Observation.Latency,
		CheckedAt:    s.LastCheck,
		Error:        err,
		ParseError:   r.Observation.ParseError,
	}
}

func toTransition(t notify.Transition) Transition {
	return Transition{
		HostName: t.Host,
		From:     t.From,
		To:       t.To,
		At:       t.At,
	}
}

// fromHealthStatus converts a stored record to the public type.
func fromHealthStatus(s health.HealthStatus) StatusResult {
	return toStatusResult(poller.Result{
		Status: s,
		Observation: health.Observation{
			Latency: time.Duration(s.LatencyMs) * time.Millisecond,
		},
	})
}
