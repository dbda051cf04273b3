package kit

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of events into a single deferred run.
// Schedule replaces any not-yet-run task, so during a burst only the most
// recent one fires once the quiet period elapses. Safe for concurrent use.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Schedule runs fn after delay, cancelling any previously scheduled task
// that has not started yet.
func (d *Debouncer) Schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
}

// Stop cancels the pending task, if any. A task that already started is not
// interrupted.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
