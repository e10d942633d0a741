package buildpulse

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func mustHost(t *testing.T, name, url string, opts ...HostOption) Host {
	t.Helper()
	h, err := NewHost(name, url, opts...)
	if err != nil {
		t.Fatalf("NewHost(%q) error = %v", name, err)
	}
	return h
}

func TestNew_Valid(t *testing.T) {
	m, err := New(WithHost(mustHost(t, "api", "https://api.example.com")))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if len(m.Hosts()) != 1 {
		t.Errorf("len(Hosts()) = %v, want %v", len(m.Hosts()), 1)
	}
}

func TestNew_Defaults(t *testing.T) {
	m, err := New(WithHost(mustHost(t, "api", "https://api.example.com")))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if m.PollInterval() != time.Second {
		t.Errorf("PollInterval() = %v, want 1s", m.PollInterval())
	}
	if m.StabilityWindow() != 5 {
		t.Errorf("StabilityWindow() = %d, want 5", m.StabilityWindow())
	}
	if !m.bell {
		t.Error("bell should be enabled by default")
	}
	if m.timeout != 0 {
		t.Errorf("timeout = %v, want 0 (derived per host)", m.timeout)
	}
	if m.renderer != nil {
		t.Error("renderer should be nil by default")
	}
	if m.listenAddr != "" {
		t.Errorf("listenAddr = %q, want empty", m.listenAddr)
	}
}

func TestNew_DefaultTimeoutLeftToHosts(t *testing.T) {
	slow, err := NewHost("nightly", "https://nightly.example.com", WithHostInterval(30*time.Second))
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	m, err := New(
		WithHost(mustHost(t, "api", "https://api.example.com")),
		WithHost(slow),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if m.timeout != 0 {
		t.Errorf("timeout = %v, want 0 so each host derives its own", m.timeout)
	}

	hosts := m.pollerHosts()
	if hosts[1].Interval != 30*time.Second || hosts[1].Timeout != 0 {
		t.Errorf("nightly = %+v, want interval 30s and no fixed timeout", hosts[1])
	}
}

func TestNew_NoHosts(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Error("New() expected error for no hosts, got nil")
	}
}

func TestNew_DuplicateHostNames(t *testing.T) {
	h1 := mustHost(t, "api", "https://api1.example.com")
	h2 := mustHost(t, "api", "https://api2.example.com")

	_, err := New(WithHost(h1), WithHost(h2))
	if err == nil {
		t.Fatal("New() expected error for duplicate host names, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate host name") {
		t.Errorf("New() error = %v, want error containing 'duplicate host name'", err)
	}

	if _, err := New(WithHosts(h1, h2)); err == nil {
		t.Error("New() expected error for duplicate host names via WithHosts, got nil")
	}
}

func TestWithHosts_PreservesOrder(t *testing.T) {
	names := []string{"zeta", "alpha", "mid"}
	var hosts []Host
	for _, n := range names {
		hosts = append(hosts, mustHost(t, n, "http://"+n+".example.com"))
	}

	m, err := New(WithHosts(hosts...))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := m.hostNames()
	for i, n := range names {
		if got[i] != n {
			t.Errorf("hostNames()[%d] = %q, want %q", i, got[i], n)
		}
	}
}

func TestOptions_Invalid(t *testing.T) {
	h := mustHost(t, "api", "https://api.example.com")

	tests := []struct {
		name string
		opt  Option
	}{
		{"zero interval", WithPollInterval(0)},
		{"negative interval", WithPollInterval(-time.Second)},
		{"zero window", WithStabilityWindow(0)},
		{"zero timeout", WithTimeout(0)},
		{"nil logger", WithLogger(nil)},
		{"nil sink", WithNotificationSink(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(WithHost(h), tt.opt); err == nil {
				t.Error("New() expected error, got nil")
			}
		})
	}
}

func TestOptions_Applied(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	renderer := RendererFunc(nil)

	m, err := New(
		WithHost(mustHost(t, "api", "https://api.example.com")),
		WithPollInterval(250*time.Millisecond),
		WithStabilityWindow(3),
		WithTimeout(100*time.Millisecond),
		WithBell(false),
		WithNotificationSink(&buf),
		WithLogger(logger),
		WithListenAddr("127.0.0.1:0"),
		WithRenderer(renderer),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if m.PollInterval() != 250*time.Millisecond {
		t.Errorf("PollInterval() = %v", m.PollInterval())
	}
	if m.StabilityWindow() != 3 {
		t.Errorf("StabilityWindow() = %d", m.StabilityWindow())
	}
	if m.timeout != 100*time.Millisecond {
		t.Errorf("timeout = %v", m.timeout)
	}
	if m.bell {
		t.Error("bell should be disabled")
	}
	if m.bellOut != &buf {
		t.Error("bell output not applied")
	}
	if m.logger != logger {
		t.Error("logger not applied")
	}
	if m.listenAddr != "127.0.0.1:0" {
		t.Errorf("listenAddr = %q", m.listenAddr)
	}
	if m.renderer == nil {
		t.Error("renderer not applied")
	}
}

func TestWithCallbacks_NilIgnored(t *testing.T) {
	m, err := New(
		WithHost(mustHost(t, "api", "https://api.example.com")),
		WithStatusCallback(nil),
		WithTransitionCallback(nil),
	)
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	if len(m.statusCallbacks) != 0 || len(m.transitionCallbacks) != 0 {
		t.Error("nil callbacks should not be registered")
	}
}

func TestHosts_ReturnsCopy(t *testing.T) {
	m, err := New(WithHost(mustHost(t, "api", "https://api.example.com")))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	hosts := m.Hosts()
	hosts[0] = mustHost(t, "other", "https://other.example.com")

	if m.Hosts()[0].Name() != "api" {
		t.Error("modifying Hosts() result affected the monitor")
	}
}

func TestPollerHosts_CarriesOverrides(t *testing.T) {
	m, err := New(WithHost(mustHost(t, "api", "https://api.example.com",
		WithHostInterval(3*time.Second),
		WithHostTimeout(time.Second),
	)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ph := m.pollerHosts()
	if len(ph) != 1 {
		t.Fatalf("expected 1 host, got %d", len(ph))
	}
	if ph[0].Interval != 3*time.Second || ph[0].Timeout != time.Second {
		t.Errorf("pollerHosts()[0] = %+v", ph[0])
	}
}
