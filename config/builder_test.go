package config

import (
	"testing"
	"time"

	"github.com/jpalmerr/buildpulse"
)

func TestBuildHosts(t *testing.T) {
	cfg := &Config{
		Hosts: []HostConfig{
			{Name: "api", URL: "https://api.example.com/build"},
			{Name: "web", URL: "https://web.example.com/build", Interval: 5000, Timeout: 400},
		},
	}

	hosts, err := BuildHosts(cfg)
	if err != nil {
		t.Fatalf("BuildHosts() error = %v", err)
	}
	if len(hosts) != 2 {
		t.Fatalf("len(hosts) = %d, want 2", len(hosts))
	}

	if hosts[0].Name() != "api" || hosts[0].Interval() != 0 || hosts[0].Timeout() != 0 {
		t.Errorf("hosts[0] = %s %v %v", hosts[0].Name(), hosts[0].Interval(), hosts[0].Timeout())
	}
	if hosts[1].Interval() != 5*time.Second {
		t.Errorf("hosts[1].Interval() = %v, want 5s", hosts[1].Interval())
	}
	if hosts[1].Timeout() != 400*time.Millisecond {
		t.Errorf("hosts[1].Timeout() = %v, want 400ms", hosts[1].Timeout())
	}
}

func TestBuildHosts_InvalidURL(t *testing.T) {
	cfg := &Config{Hosts: []HostConfig{{Name: "api", URL: "not a url"}}}
	if _, err := BuildHosts(cfg); err == nil {
		t.Error("BuildHosts() expected error, got nil")
	}
}

func TestOptions(t *testing.T) {
	cfg, err := Parse([]byte(`
interval = 2000
stability_window = 3
enable_bell = false
[[hosts]]
name = "api"
url = "https://api.example.com/build"
[[hosts]]
name = "web"
url = "https://web.example.com/build"
`), "toml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	opts, err := Options(cfg)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}

	m, err := buildpulse.New(opts...)
	if err != nil {
		t.Fatalf("buildpulse.New() error = %v", err)
	}

	if m.PollInterval() != 2*time.Second {
		t.Errorf("PollInterval() = %v, want 2s", m.PollInterval())
	}
	if m.StabilityWindow() != 3 {
		t.Errorf("StabilityWindow() = %d, want 3", m.StabilityWindow())
	}
	hosts := m.Hosts()
	if len(hosts) != 2 || hosts[0].Name() != "api" || hosts[1].Name() != "web" {
		t.Errorf("Hosts() = %v", hosts)
	}
}
