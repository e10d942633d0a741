package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservation_Healthy(t *testing.T) {
	cases := []struct {
		name string
		obs  Observation
		want bool
	}{
		{"unreachable", Observation{Reachable: false}, false},
		{"200", Observation{Reachable: true, StatusCode: 200}, true},
		{"204", Observation{Reachable: true, StatusCode: 204}, true},
		{"301", Observation{Reachable: true, StatusCode: 301}, false},
		{"404", Observation{Reachable: true, StatusCode: 404}, false},
		{"500", Observation{Reachable: true, StatusCode: 500}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.obs.Healthy())
		})
	}
}

func TestNewHealthStatus_TransportFailure(t *testing.T) {
	now := time.Now()
	obs := Observation{CheckedAt: now, TransportError: "connection refused"}

	status := NewHealthStatus("api", "http://localhost:1", obs, BuildStability{})

	assert.False(t, status.IsHealthy)
	require.NotNil(t, status.ErrorMessage)
	assert.Equal(t, "connection refused", *status.ErrorMessage)
	assert.Nil(t, status.BuildAt)
	assert.Equal(t, now, status.LastCheck)
	assert.NotNil(t, status.BuildStability.RecentBuilds)
	assert.Empty(t, status.BuildStability.RecentBuilds)
	assert.Equal(t, StateUnhealthy, Classify(status))
}

func TestNewHealthStatus_NonSuccessCode(t *testing.T) {
	obs := Observation{CheckedAt: time.Now(), Reachable: true, StatusCode: 500}

	status := NewHealthStatus("api", "http://x", obs, BuildStability{})

	assert.False(t, status.IsHealthy)
	require.NotNil(t, status.ErrorMessage)
	assert.Equal(t, "HTTP 500", *status.ErrorMessage)
	assert.Equal(t, 500, status.StatusCode)
}

func TestNewHealthStatus_ParseErrorStaysHealthy(t *testing.T) {
	obs := Observation{
		CheckedAt:  time.Now(),
		Reachable:  true,
		StatusCode: 200,
		ParseError: assert.AnError,
	}

	status := NewHealthStatus("api", "http://x", obs, BuildStability{})

	assert.True(t, status.IsHealthy)
	assert.Nil(t, status.ErrorMessage)
	assert.Nil(t, status.BuildAt)
	assert.Equal(t, StateUnstable, Classify(status))
}

func TestNewHealthStatus_CopiesBuildAt(t *testing.T) {
	build := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	obs := Observation{CheckedAt: time.Now(), Reachable: true, StatusCode: 200, BuildAt: &build}

	status := NewHealthStatus("api", "http://x", obs, BuildStability{IsStable: true, RecentBuilds: []time.Time{build}})
	build = build.Add(time.Hour)

	require.NotNil(t, status.BuildAt)
	assert.True(t, status.BuildAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, StateStable, Classify(status))
}

func TestHealthStatus_CloneIsDeep(t *testing.T) {
	build := time.Now()
	msg := "HTTP 500"
	orig := HealthStatus{
		Name:           "api",
		BuildAt:        &build,
		ErrorMessage:   &msg,
		BuildStability: BuildStability{RecentBuilds: []time.Time{build, build}},
	}

	cp := orig.Clone()
	*orig.BuildAt = build.Add(time.Hour)
	*orig.ErrorMessage = "changed"
	orig.BuildStability.RecentBuilds[0] = time.Time{}

	assert.True(t, cp.BuildAt.Equal(build))
	assert.Equal(t, "HTTP 500", *cp.ErrorMessage)
	assert.True(t, cp.BuildStability.RecentBuilds[0].Equal(build))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StateUnhealthy, Classify(HealthStatus{IsHealthy: false, BuildStability: BuildStability{IsStable: true}}))
	assert.Equal(t, StateUnstable, Classify(HealthStatus{IsHealthy: true}))
	assert.Equal(t, StateStable, Classify(HealthStatus{IsHealthy: true, BuildStability: BuildStability{IsStable: true}}))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unhealthy", StateUnhealthy.String())
	assert.Equal(t, "unstable", StateUnstable.String())
	assert.Equal(t, "stable", StateStable.String())
	assert.Equal(t, "state(9)", State(9).String())

	text, err := StateStable.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "stable", string(text))
}
