package health

import (
	"fmt"
	"time"
)

// Observation is the transient outcome of one poll of one host.
type Observation struct {
	// CheckedAt is when the poll completed.
	CheckedAt time.Time

	// Reachable is false when the request failed before a response arrived.
	Reachable bool

	// StatusCode is the HTTP status code, 0 when no response was received.
	StatusCode int

	// BuildAt is the parsed buildAt timestamp, nil when no build signal was
	// available this cycle.
	BuildAt *time.Time

	// TransportError describes a connection-level failure.
	TransportError string

	// ParseError records why a 2xx body carried no usable build timestamp.
	// It is informational only and never marks the host unhealthy.
	ParseError error

	// Latency is the time taken by the request.
	Latency time.Duration
}

// Healthy reports whether the host answered with a 2xx status.
func (o Observation) Healthy() bool {
	return o.Reachable && o.StatusCode >= 200 && o.StatusCode < 300
}

// ErrorMessage returns the text shown for an unhealthy observation, or nil.
// Parse errors are deliberately not included.
func (o Observation) ErrorMessage() *string {
	switch {
	case !o.Reachable:
		msg := o.TransportError
		return &msg
	case !o.Healthy():
		msg := fmt.Sprintf("HTTP %d", o.StatusCode)
		return &msg
	default:
		return nil
	}
}

// BuildStability is the verdict of the stability window for one cycle.
type BuildStability struct {
	IsStable     bool        `json:"is_stable"`
	RecentBuilds []time.Time `json:"recent_builds"`
}

// HealthStatus is the externally visible record of a host's latest poll.
//
// A HealthStatus is produced whole once per cycle and replaced whole in the
// store; it is never updated field by field.
type HealthStatus struct {
	Name           string         `json:"name"`
	URL            string         `json:"url"`
	LastCheck      time.Time      `json:"last_check"`
	IsHealthy      bool           `json:"is_healthy"`
	BuildAt        *time.Time     `json:"build_at"`
	ErrorMessage   *string        `json:"error_message"`
	StatusCode     int            `json:"status_code,omitempty"`
	LatencyMs      int64          `json:"latency_ms"`
	BuildStability BuildStability `json:"build_stability"`
}

// NewHealthStatus assembles the status record for one cycle.
func NewHealthStatus(name, url string, obs Observation, stability BuildStability) HealthStatus {
	status := HealthStatus{
		Name:           name,
		URL:            url,
		LastCheck:      obs.CheckedAt,
		IsHealthy:      obs.Healthy(),
		ErrorMessage:   obs.ErrorMessage(),
		StatusCode:     obs.StatusCode,
		LatencyMs:      obs.Latency.Milliseconds(),
		BuildStability: stability,
	}
	if obs.Healthy() && obs.BuildAt != nil {
		t := *obs.BuildAt
		status.BuildAt = &t
	}
	if status.BuildStability.RecentBuilds == nil {
		status.BuildStability.RecentBuilds = []time.Time{}
	}
	return status
}

// Clone returns a deep copy that shares no memory with s.
func (s HealthStatus) Clone() HealthStatus {
	cp := s
	if s.BuildAt != nil {
		t := *s.BuildAt
		cp.BuildAt = &t
	}
	if s.ErrorMessage != nil {
		msg := *s.ErrorMessage
		cp.ErrorMessage = &msg
	}
	cp.BuildStability.RecentBuilds = append([]time.Time{}, s.BuildStability.RecentBuilds...)
	return cp
}

// State returns the derived classification of s.
func (s HealthStatus) State() State {
	return Classify(s)
}
