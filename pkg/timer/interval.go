package timer

import (
	"sync"
	"time"
)

// Interval calls fn repeatedly with a fixed period until stopped.
// Restart begins a fresh full period, discarding the elapsed part of the current one.
type Interval struct {
	mu      sync.Mutex
	clock   Clock
	every   time.Duration
	fn      func()
	current Timer
	gen     uint64
	running bool
}

// NewInterval creates a stopped interval. Call Start to begin ticking.
func NewInterval(every time.Duration, fn func(), opts ...Option) *Interval {
	o := buildOptions(opts)
	return &Interval{clock: o.clock, every: every, fn: fn}
}

// Start begins ticking. It is a no-op when already running.
func (i *Interval) Start() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.running {
		return
	}
	i.running = true
	i.arm()
}

// Stop cancels the pending tick. It reports whether the interval was running.
func (i *Interval) Stop() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.running {
		return false
	}
	i.running = false
	i.disarm()
	return true
}

// Restart stops and starts the interval so the next tick is a full period away.
func (i *Interval) Restart() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.disarm()
	i.running = true
	i.arm()
}

// Running reports whether ticks are scheduled.
func (i *Interval) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running
}

// arm must be called with i.mu held.
func (i *Interval) arm() {
	i.gen++
	gen := i.gen
	i.current = i.clock.AfterFunc(i.every, func() { i.tick(gen) })
}

// disarm must be called with i.mu held.
func (i *Interval) disarm() {
	if i.current != nil {
		i.current.Stop()
		i.current = nil
	}
	i.gen++
}

func (i *Interval) tick(gen uint64) {
	i.mu.Lock()
	if !i.running || gen != i.gen {
		i.mu.Unlock()
		return
	}
	i.arm()
	i.mu.Unlock()

	i.fn()
}
