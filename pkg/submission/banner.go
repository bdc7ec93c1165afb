package submission

import (
	"sync"
	"time"

	"github.com/medcare-web/medcare/pkg/timer"
)

// DefaultBannerTTL is how long an error banner stays up.
const DefaultBannerTTL = 5 * time.Second

// Banner is the page level error message shown after a failed submission.
// Showing a new message replaces the old one and restarts the countdown.
type Banner struct {
	mu       sync.Mutex
	clock    timer.Clock
	ttl      time.Duration
	message  string
	pending  timer.Timer
	gen      uint64
	onChange func(message string)
}

// BannerOption configures a Banner.
type BannerOption func(*Banner)

func WithBannerClock(c timer.Clock) BannerOption {
	return func(b *Banner) {
		if c != nil {
			b.clock = c
		}
	}
}

func WithBannerTTL(ttl time.Duration) BannerOption {
	return func(b *Banner) {
		if ttl > 0 {
			b.ttl = ttl
		}
	}
}

// WithBannerOnChange is called with the new message whenever the banner
// appears or is dismissed (with "").
func WithBannerOnChange(fn func(message string)) BannerOption {
	return func(b *Banner) { b.onChange = fn }
}

func NewBanner(opts ...BannerOption) *Banner {
	b := &Banner{clock: timer.Real(), ttl: DefaultBannerTTL}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Show displays message until the TTL elapses.
func (b *Banner) Show(message string) {
	b.mu.Lock()
	if b.pending != nil {
		b.pending.Stop()
	}
	b.gen++
	gen := b.gen
	b.message = message
	b.pending = b.clock.AfterFunc(b.ttl, func() { b.expire(gen) })
	onChange := b.onChange
	b.mu.Unlock()

	if onChange != nil {
		onChange(message)
	}
}

// Dismiss hides the banner immediately.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	b.gen++
	b.clearLocked()
	onChange := b.onChange
	b.mu.Unlock()

	if onChange != nil {
		onChange("")
	}
}

func (b *Banner) expire(gen uint64) {
	b.mu.Lock()
	if gen != b.gen {
		b.mu.Unlock()
		return
	}
	b.clearLocked()
	onChange := b.onChange
	b.mu.Unlock()

	if onChange != nil {
		onChange("")
	}
}

func (b *Banner) clearLocked() {
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	b.message = ""
}

// Message returns the message on display, or "".
func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message
}

func (b *Banner) Visible() bool {
	return b.Message() != ""
}
