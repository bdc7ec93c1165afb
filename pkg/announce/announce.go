package announce

import (
	"context"
	"log/slog"
	"sync"
)

// Announcer surfaces a plain message to assistive technology.
// Announcements are fire-and-forget; implementations must not block for long.
type Announcer interface {
	Announce(ctx context.Context, message string)
}

// Func adapts a function to the Announcer interface.
type Func func(ctx context.Context, message string)

func (f Func) Announce(ctx context.Context, message string) {
	f(ctx, message)
}

// Nop discards every announcement.
func Nop() Announcer {
	return Func(func(context.Context, string) {})
}

// OrNop returns a, or a no-op announcer when a is nil.
func OrNop(a Announcer) Announcer {
	if a == nil {
		return Nop()
	}
	return a
}

// Multi delivers each announcement to every non-nil announcer in order.
func Multi(announcers ...Announcer) Announcer {
	list := make([]Announcer, 0, len(announcers))
	for _, a := range announcers {
		if a != nil {
			list = append(list, a)
		}
	}
	return Func(func(ctx context.Context, message string) {
		for _, a := range list {
			a.Announce(ctx, message)
		}
	})
}

// Logger writes announcements to a structured logger at debug level.
func Logger(log *slog.Logger) Announcer {
	if log == nil {
		return Nop()
	}
	return Func(func(ctx context.Context, message string) {
		log.DebugContext(ctx, "announcement", slog.String("message", message))
	})
}

// Collector records announcements in memory. It backs per-request live
// regions in the HTTP layer and is handy in tests.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

func (c *Collector) Announce(_ context.Context, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

// Messages returns a copy of the recorded messages in announcement order.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

// Last returns the most recent message, or "" when nothing was announced.
func (c *Collector) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1]
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}
