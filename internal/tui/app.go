// Package tui renders the live terminal dashboard.
//
// The dashboard is a Bubble Tea program that re-reads the status store on
// its own tick. It only ever takes snapshots, so a slow terminal never holds
// up a poll loop.
package tui

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jpalmerr/buildpulse/internal/health"
	"github.com/jpalmerr/buildpulse/internal/store"
)

const defaultRefresh = 500 * time.Millisecond

// Config describes what the dashboard shows.
type Config struct {
	// Title is shown at the left of the header.
	Title string

	// Hosts lists host names in display order. Hosts present in the store
	// but not listed are appended alphabetically.
	Hosts []string

	// PollInterval is displayed in the header.
	PollInterval time.Duration

	// Refresh is how often the store is re-read. Defaults to 500ms.
	Refresh time.Duration

	// WindowSize is the stability window capacity, used for the gauge.
	WindowSize int

	// Bell reports whether transition bells are enabled.
	Bell bool
}

// App is the root Bubble Tea model.
type App struct {
	store store.Store
	cfg   Config

	statuses    map[string]health.HealthStatus
	lastRefresh time.Time

	// Layout
	width, height int

	showHelp bool
	now      func() time.Time
}

// NewApp creates a dashboard reading from st.
func NewApp(st store.Store, cfg Config) *App {
	if cfg.Refresh <= 0 {
		cfg.Refresh = defaultRefresh
	}
	if cfg.Title == "" {
		cfg.Title = "buildpulse"
	}
	return &App{
		store:    st,
		cfg:      cfg,
		statuses: map[string]health.HealthStatus{},
		now:      time.Now,
	}
}

// Init implements tea.Model. Reads the store immediately on launch.
func (app *App) Init() tea.Cmd {
	return func() tea.Msg {
		return TickMsg(time.Now())
	}
}

// Update implements tea.Model.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case TickMsg:
		app.refresh(time.Time(msg))
		return app, tickCmd(app.cfg.Refresh)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			app.refresh(app.now())
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		}
	}

	return app, nil
}

// View implements tea.Model.
func (app *App) View() string {
	parts := []string{
		renderHeader(app),
		"",
		renderTable(app),
		"",
		renderFooter(app),
	}
	return strings.Join(parts, "\n")
}

func (app *App) refresh(at time.Time) {
	app.statuses = app.store.Snapshot()
	app.lastRefresh = at
}

// rowOrder returns host names in configured order followed by any other
// stored hosts alphabetically.
func (app *App) rowOrder() []string {
	seen := make(map[string]bool, len(app.cfg.Hosts))
	names := make([]string, 0, len(app.cfg.Hosts)+len(app.statuses))
	for _, n := range app.cfg.Hosts {
		if seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}

	var extra []string
	for n := range app.statuses {
		if !seen[n] {
			extra = append(extra, n)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

// counts tallies the stored hosts per classification.
func (app *App) counts() map[health.State]int {
	out := make(map[health.State]int, 3)
	for _, s := range app.statuses {
		out[health.Classify(s)]++
	}
	return out
}

// tickCmd schedules the next store read after d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Run starts the dashboard on the terminal and blocks until the user quits.
func Run(app *App, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(app, opts...).Run()
	return err
}
