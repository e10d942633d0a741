package tui

import (
	"fmt"
	"strings"
	"time"
)

// formatAge renders how long ago t was, e.g. "42s", "5m", "3h", "2d".
func formatAge(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < 0:
		return "future"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 48*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// formatInterval formats a poll interval compactly: "500ms", "10s", "2m".
func formatInterval(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%gs", d.Seconds())
	default:
		return fmt.Sprintf("%gm", d.Minutes())
	}
}

// windowGauge draws one glyph per window slot: ● for a build equal to the
// newest, ◦ for an older build, ○ for an empty slot.
func windowGauge(builds []time.Time, capacity int) string {
	if capacity <= 0 {
		return ""
	}
	if len(builds) > capacity {
		builds = builds[len(builds)-capacity:]
	}

	var b strings.Builder
	var newest time.Time
	if len(builds) > 0 {
		newest = builds[len(builds)-1]
	}
	for _, t := range builds {
		if t.Equal(newest) {
			b.WriteString("●")
		} else {
			b.WriteString("◦")
		}
	}
	b.WriteString(strings.Repeat("○", capacity-len(builds)))
	return b.String()
}

// truncate shortens s to n runes, appending "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
