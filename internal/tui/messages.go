package tui

import "time"

// TickMsg triggers a re-read of the status store.
type TickMsg time.Time
