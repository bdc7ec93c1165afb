package carousel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/timer"
)

// DefaultInterval is the auto rotation period.
const DefaultInterval = 5 * time.Second

var (
	ErrEmpty      = errors.New("carousel: no items")
	ErrOutOfRange = errors.New("carousel: index out of range")
)

// Rotator cycles through items, advancing on a timer. Manual navigation
// restarts the timer; pausing (pointer hover) stops it until resumed.
type Rotator[T any] struct {
	mu       sync.Mutex
	items    []T
	index    int
	started  bool
	paused   bool
	interval *timer.Interval

	every     time.Duration
	clock     timer.Clock
	onChange  func(index int, item T)
	announcer announce.Announcer
	describe  func(T) string
}

type Option[T any] func(*Rotator[T])

func WithInterval[T any](d time.Duration) Option[T] {
	return func(r *Rotator[T]) {
		if d > 0 {
			r.every = d
		}
	}
}

func WithClock[T any](c timer.Clock) Option[T] {
	return func(r *Rotator[T]) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithOnChange is called after every change of the active item.
func WithOnChange[T any](fn func(index int, item T)) Option[T] {
	return func(r *Rotator[T]) { r.onChange = fn }
}

// WithAnnouncer announces "Now showing <describe(item)>" on every change.
func WithAnnouncer[T any](a announce.Announcer, describe func(T) string) Option[T] {
	return func(r *Rotator[T]) {
		r.announcer = a
		r.describe = describe
	}
}

// New creates a stopped rotator showing the first item.
func New[T any](items []T, opts ...Option[T]) (*Rotator[T], error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	r := &Rotator[T]{
		items: append([]T(nil), items...),
		every: DefaultInterval,
		clock: timer.Real(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.interval = timer.NewInterval(r.every, r.tick, timer.WithClock(r.clock))
	return r, nil
}

// Start begins auto rotation.
func (r *Rotator[T]) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = true
	if !r.paused {
		r.interval.Start()
	}
}

// Stop ends auto rotation.
func (r *Rotator[T]) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = false
	r.interval.Stop()
}

// Pause suspends rotation, as when the pointer enters the slider.
func (r *Rotator[T]) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = true
	r.interval.Stop()
}

// Resume restarts rotation with a full period.
func (r *Rotator[T]) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = false
	if r.started {
		r.interval.Restart()
	}
}

func (r *Rotator[T]) Next(ctx context.Context) { r.move(ctx, 1) }
func (r *Rotator[T]) Prev(ctx context.Context) { r.move(ctx, -1) }

// GoTo shows the item at index.
func (r *Rotator[T]) GoTo(ctx context.Context, index int) error {
	r.mu.Lock()
	if index < 0 || index >= len(r.items) {
		r.mu.Unlock()
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, index, len(r.items))
	}
	r.index = index
	r.restartLocked()
	idx, item := r.index, r.items[r.index]
	r.mu.Unlock()

	r.changed(ctx, idx, item)
	return nil
}

func (r *Rotator[T]) move(ctx context.Context, step int) {
	r.mu.Lock()
	r.advanceLocked(step)
	r.restartLocked()
	idx, item := r.index, r.items[r.index]
	r.mu.Unlock()

	r.changed(ctx, idx, item)
}

func (r *Rotator[T]) tick() {
	r.mu.Lock()
	if !r.started || r.paused {
		r.mu.Unlock()
		return
	}
	r.advanceLocked(1)
	idx, item := r.index, r.items[r.index]
	r.mu.Unlock()

	r.changed(context.Background(), idx, item)
}

func (r *Rotator[T]) advanceLocked(step int) {
	n := len(r.items)
	r.index = ((r.index+step)%n + n) % n
}

func (r *Rotator[T]) restartLocked() {
	if r.started && !r.paused {
		r.interval.Restart()
	}
}

func (r *Rotator[T]) changed(ctx context.Context, index int, item T) {
	if r.onChange != nil {
		r.onChange(index, item)
	}
	if r.announcer != nil && r.describe != nil {
		r.announcer.Announce(ctx, "Now showing "+r.describe(item))
	}
}

// Index returns the position of the active item.
func (r *Rotator[T]) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// Current returns the active item.
func (r *Rotator[T]) Current() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[r.index]
}

func (r *Rotator[T]) Len() int { return len(r.items) }

// Running reports whether the rotator advances on its own.
func (r *Rotator[T]) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started && !r.paused
}
