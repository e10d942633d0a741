package buildpulse

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpalmerr/buildpulse/internal/tui"
)

// Renderer presents host statuses while a [Monitor] runs.
//
// Render must return once ctx is cancelled. Returning earlier, for example
// because the user quit, stops the monitor.
type Renderer interface {
	Render(ctx context.Context, m *Monitor) error
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(ctx context.Context, m *Monitor) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, m *Monitor) error {
	return f(ctx, m)
}

// TerminalRenderer draws a full-screen dashboard on the terminal.
type TerminalRenderer struct {
	// Title is shown in the header. Defaults to "buildpulse".
	Title string

	// Refresh is how often the dashboard re-reads statuses. Defaults to 500ms.
	Refresh time.Duration

	// ProgramOptions are passed to the Bubble Tea program, mainly so tests
	// can replace the terminal.
	ProgramOptions []tea.ProgramOption
}

// Render runs the dashboard until the user quits or ctx is cancelled.
func (r TerminalRenderer) Render(ctx context.Context, m *Monitor) error {
	app := tui.NewApp(m.store, tui.Config{
		Title:        r.Title,
		Hosts:        m.hostNames(),
		PollInterval: m.pollInterval,
		Refresh:      r.Refresh,
		WindowSize:   m.windowSize,
		Bell:         m.bell,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if out := m.dashboardOutput(); out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	opts = append(opts, r.ProgramOptions...)
	err := tui.Run(app, opts...)
	if ctx.Err() != nil {
		// killed by cancellation, not a failure
		return nil
	}
	return err
}
