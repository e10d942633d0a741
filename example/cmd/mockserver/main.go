// Standalone mock build server for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver --mode rotate --every 20s
//
// Then in another terminal:
//
//	go run ./cmd/buildpulse watch -c example/config.toml
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/buildpulse/example/mockbuild"
)

func main() {
	var (
		addr     string
		cfg      mockbuild.Config
		mode     string
		failRate float64
	)

	cmd := &cobra.Command{
		Use:   "mockserver",
		Short: "Serve fake build endpoints at /<host>",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Mode = mockbuild.Mode(mode)
			cfg.FailRate = failRate
			switch cfg.Mode {
			case mockbuild.ModeFixed, mockbuild.ModeNow, mockbuild.ModeRotate:
			default:
				return fmt.Errorf("unknown mode %q (expected fixed, now, or rotate)", mode)
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			logger.Info("mock build server starting", "addr", addr, "mode", mode, "field", cfg.Field)

			srv := &http.Server{
				Addr:              addr,
				Handler:           mockbuild.NewHandler(cfg, logger),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9999", "listen address")
	cmd.Flags().StringVar(&mode, "mode", "rotate", "build mode: fixed, now, or rotate")
	cmd.Flags().DurationVar(&cfg.Every, "every", 30*time.Second, "deploy period in rotate mode")
	cmd.Flags().StringVar(&cfg.Field, "field", "buildAt", "JSON field carrying the build time")
	cmd.Flags().Float64Var(&failRate, "fail-rate", 0, "probability of answering 500")
	cmd.Flags().DurationVar(&cfg.Latency, "latency", 200*time.Millisecond, "maximum random response delay")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
