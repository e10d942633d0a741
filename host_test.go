package buildpulse

import (
	"strings"
	"testing"
	"time"
)

func TestNewHost_Valid(t *testing.T) {
	h, err := NewHost("api", "https://api.example.com/build")
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	if h.Name() != "api" {
		t.Errorf("Name() = %q, want %q", h.Name(), "api")
	}
	if h.URL() != "https://api.example.com/build" {
		t.Errorf("URL() = %q", h.URL())
	}
	if h.Interval() != 0 {
		t.Errorf("Interval() = %v, want 0", h.Interval())
	}
	if h.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", h.Timeout())
	}
}

func TestNewHost_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		url     string
		wantErr string
	}{
		{"empty name", "", "https://example.com", "host name cannot be empty"},
		{"no scheme", "api", "example.com/build", "URL must have a scheme"},
		{"ftp scheme", "api", "ftp://example.com/build", "URL must have a scheme"},
		{"no host", "api", "http:///build", "URL must have a host"},
		{"unparsable", "api", "http://[::1", "invalid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHost(tt.host, tt.url)
			if err == nil {
				t.Fatal("NewHost() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("NewHost() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewHost_Options(t *testing.T) {
	h, err := NewHost("api", "http://localhost:8080/build",
		WithHostInterval(5*time.Second),
		WithHostTimeout(2*time.Second),
	)
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	if h.Interval() != 5*time.Second {
		t.Errorf("Interval() = %v, want 5s", h.Interval())
	}
	if h.Timeout() != 2*time.Second {
		t.Errorf("Timeout() = %v, want 2s", h.Timeout())
	}
}

func TestNewHost_InvalidOptions(t *testing.T) {
	if _, err := NewHost("api", "http://localhost", WithHostInterval(0)); err == nil {
		t.Error("expected error for zero interval")
	}
	if _, err := NewHost("api", "http://localhost", WithHostTimeout(-time.Second)); err == nil {
		t.Error("expected error for negative timeout")
	}
}
