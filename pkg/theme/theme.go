package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/medcare-web/medcare/pkg/announce"
)

// StorageKey is the preference key the theme is saved under.
const StorageKey = "medcare-theme"

// Theme is a color scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse returns the theme named s, or false.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// ToggleLabel is the accessible label of the toggle button while t is active.
func (t Theme) ToggleLabel() string {
	return fmt.Sprintf("Switch to %s mode", t.Opposite())
}

// Store persists the saved preference.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// Controller resolves and toggles the active theme. A saved preference wins;
// without one the system preference applies and follows its changes.
type Controller struct {
	mu        sync.Mutex
	store     Store
	system    Theme
	announcer announce.Announcer
}

type Option func(*Controller)

// WithSystemPreference sets the scheme reported by the user agent.
func WithSystemPreference(t Theme) Option {
	return func(c *Controller) {
		if _, ok := Parse(string(t)); ok {
			c.system = t
		}
	}
}

func WithAnnouncer(a announce.Announcer) Option {
	return func(c *Controller) { c.announcer = a }
}

// New creates a controller over store. A nil store keeps the preference in memory.
func New(store Store, opts ...Option) *Controller {
	if store == nil {
		store = &MemoryStore{}
	}
	c := &Controller{store: store, system: Light}
	for _, opt := range opts {
		opt(c)
	}
	c.announcer = announce.OrNop(c.announcer)
	return c
}

// Current returns the active theme.
func (c *Controller) Current() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

func (c *Controller) currentLocked() Theme {
	if saved, ok := c.saved(); ok {
		return saved
	}
	return c.system
}

func (c *Controller) saved() (Theme, bool) {
	v, ok := c.store.Get(StorageKey)
	if !ok {
		return "", false
	}
	return Parse(v)
}

// Saved reports whether an explicit preference is stored.
func (c *Controller) Saved() bool {
	_, ok := c.saved()
	return ok
}

// Toggle switches to the other theme, saves it and announces the change.
func (c *Controller) Toggle(ctx context.Context) (Theme, error) {
	c.mu.Lock()
	next := c.currentLocked().Opposite()
	err := c.store.Set(StorageKey, string(next))
	c.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("theme: save preference: %w", err)
	}
	c.announcer.Announce(ctx, fmt.Sprintf("Switched to %s mode", next))
	return next, nil
}

// SystemChanged records a new system preference. It reports whether the
// active theme changed, which only happens while nothing is saved.
func (c *Controller) SystemChanged(t Theme) bool {
	if _, ok := Parse(string(t)); !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.currentLocked()
	c.system = t
	return c.currentLocked() != before
}
