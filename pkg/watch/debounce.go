package watch

import (
	"sort"
	"sync"
	"time"
)

// Debouncer collects paths and hands them to a callback as one sorted batch
// once no new path has arrived for the interval. Batches never overlap:
// a batch that becomes ready while the previous callback runs waits for it.
type Debouncer struct {
	interval time.Duration
	fire     func(paths []string)

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer
	stopped bool

	fireMu sync.Mutex
}

// NewDebouncer returns a debouncer that calls fire with each batch.
func NewDebouncer(interval time.Duration, fire func(paths []string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		fire:     fire,
		pending:  make(map[string]struct{}),
	}
}

// Add records path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.fireMu.Lock()
	defer d.fireMu.Unlock()

	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	batch := make([]string, 0, len(d.pending))
	for p := range d.pending {
		batch = append(batch, p)
	}
	d.pending = make(map[string]struct{})
	d.mu.Unlock()

	sort.Strings(batch)
	d.fire(batch)
}

// Stop drops pending paths and cancels the timer. A callback already
// running is not interrupted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = make(map[string]struct{})
}
