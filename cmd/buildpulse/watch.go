package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/buildpulse"
	"github.com/jpalmerr/buildpulse/config"
)

const shutdownTimeout = 10 * time.Second

// newLogger creates a JSON logger for CLI use.
func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// watchCmd starts monitoring.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll hosts and show the live dashboard",
	Long: `Poll every configured host and show a live dashboard of their health
and build stability.

The dashboard owns the terminal, so logs go to --log-file. With --headless
no dashboard is drawn and logs go to stderr instead.

Runs until q is pressed, or SIGINT/SIGTERM is received.

Example:
  buildpulse watch -c config.toml
  buildpulse watch -c config.toml --listen :8080
  buildpulse watch -c config.yaml --headless`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	watchCmd.Flags().String("listen", "", "serve the JSON status API on this address (e.g. :8080)")
	watchCmd.Flags().String("log-file", "buildpulse.log", "log destination while the dashboard is shown")
	watchCmd.Flags().Bool("headless", false, "do not draw the dashboard; log to stderr")
	_ = watchCmd.MarkFlagRequired("config")
}

func runWatch(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	listen, _ := cmd.Flags().GetString("listen")
	logFile, _ := cmd.Flags().GetString("log-file")
	headless, _ := cmd.Flags().GetBool("headless")

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logOut := io.Writer(os.Stderr)
	if !headless {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	logger := newLogger(logOut)

	logger.Info("config loaded",
		"path", configFile,
		"hosts", len(cfg.Hosts),
		"interval", cfg.PollInterval().String(),
		"stability_window", cfg.StabilityWindow,
	)

	m, err := newMonitor(cfg, logger, listen, headless)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return runUntilDone(ctx, m, logger)
}

// newMonitor builds a Monitor from a loaded config and the watch flags.
func newMonitor(cfg *config.Config, logger *slog.Logger, listen string, headless bool) (*buildpulse.Monitor, error) {
	opts, err := config.Options(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build hosts: %w", err)
	}

	opts = append(opts,
		buildpulse.WithLogger(logger),
		buildpulse.WithListenAddr(listen),
	)
	if !headless {
		opts = append(opts, buildpulse.WithRenderer(buildpulse.TerminalRenderer{
			Title:   cfg.Title,
			Refresh: cfg.RefreshInterval(),
		}))
	}

	m, err := buildpulse.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create monitor: %w", err)
	}
	return m, nil
}

// runUntilDone starts m and waits for it to stop, giving it shutdownTimeout
// to finish once ctx is cancelled.
func runUntilDone(ctx context.Context, m *buildpulse.Monitor, logger *slog.Logger) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- m.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("monitor error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("monitor error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
