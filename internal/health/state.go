package health

import "fmt"

// State is the three-way classification of a host.
type State int

const (
	// StateUnhealthy means the host was unreachable or answered non-2xx.
	StateUnhealthy State = iota

	// StateUnstable means the host is healthy but its build has not yet been
	// seen unchanged across a full window.
	StateUnstable

	// StateStable means the host is healthy and its build is stable.
	StateStable
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateUnhealthy:
		return "unhealthy"
	case StateUnstable:
		return "unstable"
	case StateStable:
		return "stable"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify derives the [State] of a host from its latest status.
func Classify(s HealthStatus) State {
	switch {
	case !s.IsHealthy:
		return StateUnhealthy
	case s.BuildStability.IsStable:
		return StateStable
	default:
		return StateUnstable
	}
}
