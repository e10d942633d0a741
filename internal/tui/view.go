package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpalmerr/buildpulse/internal/health"
)

// column widths
const (
	colHost  = 20
	colState = 10
	colCheck = 10
	colBuild = 21
	colAge   = 6
	colLat   = 8
)

// renderHeader renders the top bar: title, per-state counts, and timing.
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	left := app.cfg.Title

	c := app.counts()
	center := strings.Join([]string{
		StyleStable.Render(fmt.Sprintf("● %d stable", c[health.StateStable])),
		StyleUnstable.Render(fmt.Sprintf("● %d unstable", c[health.StateUnstable])),
		StyleUnhealthy.Render(fmt.Sprintf("● %d unhealthy", c[health.StateUnhealthy])),
	}, "  ")

	bell := "off"
	if app.cfg.Bell {
		bell = "on"
	}
	right := StyleDim.Render(fmt.Sprintf("Poll: %s  Window: %d  Bell: %s",
		formatInterval(app.cfg.PollInterval), app.cfg.WindowSize, bell))

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// renderTable renders one row per host.
func renderTable(app *App) string {
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %*s %*s  %-*s  %s",
		colHost, "HOST",
		colState, "STATE",
		colCheck, "CHECKED",
		colBuild, "BUILD",
		colAge, "AGE",
		colLat, "LATENCY",
		windowWidth(app), "WINDOW",
		"ERROR",
	)

	lines := []string{StyleTableHeader.Render(header)}
	for _, name := range app.rowOrder() {
		lines = append(lines, renderRow(app, name))
	}
	return strings.Join(lines, "\n")
}

func renderRow(app *App, name string) string {
	status, ok := app.statuses[name]
	if !ok {
		row := fmt.Sprintf("%-*s %s", colHost, truncate(name, colHost), pad(StylePending.Render("PENDING"), colState))
		return StyleTableRow.Render(row)
	}

	state := health.Classify(status)
	badge := pad(StateStyle(state).Render(strings.ToUpper(state.String())), colState)

	build, age := "-", "-"
	if status.BuildAt != nil {
		build = status.BuildAt.UTC().Format("2006-01-02 15:04:05Z")
		age = formatAge(app.lastRefresh, *status.BuildAt)
	}

	errText := ""
	if status.ErrorMessage != nil {
		errText = StyleError.Render(truncate(*status.ErrorMessage, 40))
	}

	row := fmt.Sprintf("%-*s %s %-*s %-*s %*s %*s  %-*s  %s",
		colHost, truncate(name, colHost),
		badge,
		colCheck, status.LastCheck.Format("15:04:05"),
		colBuild, build,
		colAge, age,
		colLat, fmt.Sprintf("%dms", status.LatencyMs),
		windowWidth(app), windowGauge(status.BuildStability.RecentBuilds, app.cfg.WindowSize),
		errText,
	)
	return row
}

// renderFooter renders the key binding help footer.
func renderFooter(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}
	text := "? for help"
	if app.showHelp {
		text = helpText
	}
	if !app.lastRefresh.IsZero() {
		text = fmt.Sprintf("Updated %s   %s", app.lastRefresh.Format("15:04:05"), text)
	}
	return StyleDim.Width(width).Render(text)
}

func windowWidth(app *App) int {
	if app.cfg.WindowSize < len("WINDOW") {
		return len("WINDOW")
	}
	return app.cfg.WindowSize
}

// pad right-pads a styled string to a visible width of n.
func pad(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
