package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const barWidth = 24

// Progress draws a single-line counter for a batch of named items,
// such as the libraries of an index run.
type Progress struct {
	mu      sync.Mutex
	w       io.Writer
	label   string
	total   int
	done    int
	failed  int
	started time.Time
}

// NewProgress returns a Progress writing to w (os.Stderr when nil).
// label names the counted items and defaults to "items".
func NewProgress(w io.Writer, label string) *Progress {
	if w == nil {
		w = os.Stderr
	}
	if label == "" {
		label = "items"
	}
	return &Progress{w: w, label: label}
}

// Start resets the counter for total items.
func (p *Progress) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total, p.done, p.failed = total, 0, 0
	p.started = time.Now()
	p.draw("")
}

// Advance counts one finished item.
func (p *Progress) Advance(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.draw(name)
}

// Fail counts one failed item and prints err on its own line.
func (p *Progress) Fail(name string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.failed++
	fmt.Fprintf(p.w, "\r\033[K✗ %s: %v\n", name, err)
	p.draw(name)
}

// Finish ends the progress line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total > 0 {
		p.draw("")
	}
	fmt.Fprintln(p.w)
}

func (p *Progress) draw(current string) {
	if p.total <= 0 {
		return
	}
	done := min(p.done, p.total)
	filled := barWidth * done / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	line := fmt.Sprintf("\r\033[K[%s] %d/%d %s", bar, done, p.total, p.label)
	if p.failed > 0 {
		line += fmt.Sprintf(", %d failed", p.failed)
	}
	if elapsed := time.Since(p.started); elapsed >= time.Second {
		line += fmt.Sprintf(" %.1f/s", float64(done)/elapsed.Seconds())
	}
	if current != "" {
		line += " " + current
	}
	io.WriteString(p.w, line)
}
