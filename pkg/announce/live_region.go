package announce

import (
	"context"
	"sync"
	"time"

	"github.com/medcare-web/medcare/pkg/timer"
)

// DefaultTTL is how long a message stays in a live region.
const DefaultTTL = time.Second

// LiveRegion holds the current polite announcement and clears it after a TTL.
// A new announcement replaces the current one and restarts the TTL.
type LiveRegion struct {
	mu      sync.Mutex
	clock   timer.Clock
	ttl     time.Duration
	current string
	pending timer.Timer
	onClear func()
}

// LiveRegionOption configures a LiveRegion.
type LiveRegionOption func(*LiveRegion)

// WithClock sets the clock used for the TTL.
func WithClock(c timer.Clock) LiveRegionOption {
	return func(r *LiveRegion) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) LiveRegionOption {
	return func(r *LiveRegion) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithOnClear registers a callback run after the message expires.
func WithOnClear(fn func()) LiveRegionOption {
	return func(r *LiveRegion) {
		r.onClear = fn
	}
}

// NewLiveRegion creates an empty live region.
func NewLiveRegion(opts ...LiveRegionOption) *LiveRegion {
	r := &LiveRegion{clock: timer.Real(), ttl: DefaultTTL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *LiveRegion) Announce(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending != nil {
		r.pending.Stop()
	}
	r.current = message

	var self timer.Timer
	self = r.clock.AfterFunc(r.ttl, func() {
		r.mu.Lock()
		if r.pending != self {
			r.mu.Unlock()
			return
		}
		r.current = ""
		r.pending = nil
		onClear := r.onClear
		r.mu.Unlock()

		if onClear != nil {
			onClear()
		}
	})
	r.pending = self
}

// Current returns the message on display, or "" once it expired.
func (r *LiveRegion) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
