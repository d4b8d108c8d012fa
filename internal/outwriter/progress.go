package outwriter

import (
	"fmt"
	"io"
	"sync"

	"github.com/huangsam/codeinsights/schema"
)

// ProgressPrinter writes pipeline progress as plain lines. Within one stage only
// the first label and the last label are printed, so per-file counters do not
// flood the terminal.
type ProgressPrinter struct {
	mu      sync.Mutex
	w       io.Writer
	state   schema.StageState
	started bool
	pending string
}

// NewProgressPrinter creates a printer writing to w, usually os.Stderr.
func NewProgressPrinter(w io.Writer) *ProgressPrinter {
	return &ProgressPrinter{w: w}
}

// Report implements contract.ProgressReporter.
func (p *ProgressPrinter) Report(state schema.StageState, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started && state == p.state {
		p.pending = label
		return
	}
	p.flush()
	p.started = true
	p.state = state
	_, _ = fmt.Fprintln(p.w, label)
}

// Flush prints the last buffered label of the current stage, if any.
func (p *ProgressPrinter) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flush()
}

func (p *ProgressPrinter) flush() {
	if p.pending == "" {
		return
	}
	_, _ = fmt.Fprintln(p.w, p.pending)
	p.pending = ""
}
