package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/buildpulse"
	"github.com/jpalmerr/buildpulse/example/mockbuild"
)

func main() {
	logFile, err := os.Create("example.log")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer func() { _ = logFile.Close() }()
	logger := slog.New(slog.NewJSONHandler(logFile, nil))

	// mock fleet: every host redeploys roughly every 20s
	mock := &http.Server{
		Addr:              ":9999",
		Handler:           mockbuild.NewHandler(mockbuild.Config{Mode: mockbuild.ModeRotate, Every: 20 * time.Second}, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := mock.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("mock server error", "error", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	var hosts []buildpulse.Host
	for _, name := range []string{"api", "web", "worker", "billing"} {
		h, err := buildpulse.NewHost(name, "http://localhost:9999/"+name)
		if err != nil {
			logger.Error("failed to create host", "error", err)
			os.Exit(1)
		}
		hosts = append(hosts, h)
	}

	m, err := buildpulse.New(
		buildpulse.WithHosts(hosts...),
		buildpulse.WithStabilityWindow(5),
		buildpulse.WithLogger(logger),
		buildpulse.WithRenderer(buildpulse.TerminalRenderer{Title: "buildpulse demo"}),
		buildpulse.WithTransitionCallback(func(t buildpulse.Transition) {
			if t.Gained() {
				logger.Info("deploy settled", "host", t.HostName)
			}
		}),
	)
	if err != nil {
		logger.Error("failed to create monitor", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := m.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "buildpulse error:", err)
		os.Exit(1)
	}
	_ = mock.Close()
}
