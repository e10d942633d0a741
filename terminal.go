package buildpulse

import (
	"os"
	"sync"
)

// terminalOutput serializes writes to a terminal file. The bell and the
// dashboard share one, so a bell never lands inside a half-written frame.
//
// It satisfies Bubble Tea's terminal file interface, so the program still
// detects a TTY and its size through it.
type terminalOutput struct {
	mu sync.Mutex
	f  *os.File
}

func newTerminalOutput(f *os.File) *terminalOutput {
	return &terminalOutput{f: f}
}

func (t *terminalOutput) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.f.Write(p)
}

func (t *terminalOutput) Read(p []byte) (int, error) {
	return t.f.Read(p)
}

// Close is a no-op; the monitor does not own the terminal.
func (t *terminalOutput) Close() error {
	return nil
}

func (t *terminalOutput) Fd() uintptr {
	return t.f.Fd()
}
