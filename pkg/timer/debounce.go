package timer

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered callback once no new trigger
// arrived for the quiet period. Each Trigger replaces the pending one.
type Debouncer struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	pending Timer
	gen     uint64
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration, opts ...Option) *Debouncer {
	o := buildOptions(opts)
	return &Debouncer{clock: o.clock, delay: delay}
}

// Trigger schedules fn after the quiet period and cancels any pending callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen || d.pending == nil {
			d.mu.Unlock()
			return
		}
		d.pending = nil
		d.mu.Unlock()

		fn()
	})
}

// Cancel drops the pending callback. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return false
	}
	d.pending.Stop()
	d.pending = nil
	d.gen++
	return true
}

// Pending reports whether a callback is waiting for the quiet period to end.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}
