package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jpalmerr/buildpulse/internal/health"
)

// BuildField is the top-level JSON field holding the build timestamp.
const BuildField = "buildAt"

var (
	// ErrNoBuildField is returned when the body has no usable buildAt field.
	ErrNoBuildField = errors.New("response has no " + BuildField + " field")

	// ErrInvalidBuildAt is returned when buildAt is not an RFC 3339 string.
	ErrInvalidBuildAt = errors.New(BuildField + " is not an RFC 3339 timestamp")
)

// ParseBuildAt extracts the build timestamp from a JSON response body.
// The returned time is in UTC.
func ParseBuildAt(body []byte) (time.Time, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	raw, ok := doc[BuildField]
	if !ok || string(raw) == "null" {
		return time.Time{}, ErrNoBuildField
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("%w: got %s", ErrInvalidBuildAt, raw)
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBuildAt, s)
	}
	return t.UTC(), nil
}

// Observe classifies the outcome of one request.
//
// A transport failure yields an unreachable observation. That includes a body
// that could not be read after headers arrived; its status code is kept for
// display but the observation is still unreachable. A non-2xx response
// is reachable but unhealthy and its body is not inspected. A 2xx response
// has its body parsed for a build timestamp; failing that, ParseError is set
// and the observation stays healthy.
func Observe(resp Response, now time.Time) health.Observation {
	obs := health.Observation{
		CheckedAt:  now,
		Latency:    resp.Latency,
		StatusCode: resp.StatusCode,
	}

	if resp.Error != nil {
		obs.TransportError = describeTransportError(resp.Error)
		return obs
	}

	obs.Reachable = true
	if !obs.Healthy() {
		return obs
	}

	build, err := ParseBuildAt(resp.Body)
	if err != nil {
		obs.ParseError = err
		return obs
	}
	obs.BuildAt = &build
	return obs
}

// describeTransportError returns the innermost cause of err, which is the
// part a person reading the dashboard cares about ("connection refused"
// rather than the full dial chain).
func describeTransportError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
