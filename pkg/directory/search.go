package directory

import (
	"context"
	"sync"
	"time"

	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/timer"
)

// DefaultSearchDebounce is the quiet period before typed search input is applied.
const DefaultSearchDebounce = 300 * time.Millisecond

// ResultsFunc receives the filter in effect and the matching doctors.
type ResultsFunc func(ctx context.Context, f Filter, doctors []Doctor)

// LiveSearch holds the filter state of the directory page. Typed search
// input is debounced; select changes apply immediately.
type LiveSearch struct {
	mu        sync.Mutex
	dir       *Directory
	filter    Filter
	debouncer *timer.Debouncer
	announcer announce.Announcer
	onResults ResultsFunc
}

// SearchOption configures a LiveSearch.
type SearchOption func(*searchConfig)

type searchConfig struct {
	delay     time.Duration
	clock     timer.Clock
	announcer announce.Announcer
}

// WithDebounce overrides DefaultSearchDebounce.
func WithDebounce(d time.Duration) SearchOption {
	return func(c *searchConfig) { c.delay = d }
}

// WithSearchClock sets the clock used by the debouncer.
func WithSearchClock(clock timer.Clock) SearchOption {
	return func(c *searchConfig) { c.clock = clock }
}

// WithAnnouncer sets where result counts are announced.
func WithAnnouncer(a announce.Announcer) SearchOption {
	return func(c *searchConfig) { c.announcer = a }
}

// NewLiveSearch creates a search controller over dir. onResults may be nil.
func NewLiveSearch(dir *Directory, onResults ResultsFunc, opts ...SearchOption) *LiveSearch {
	cfg := searchConfig{delay: DefaultSearchDebounce, clock: timer.Real()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if onResults == nil {
		onResults = func(context.Context, Filter, []Doctor) {}
	}
	return &LiveSearch{
		dir:       dir,
		debouncer: timer.NewDebouncer(cfg.delay, timer.WithClock(cfg.clock)),
		announcer: announce.OrNop(cfg.announcer),
		onResults: onResults,
	}
}

// Input records a keystroke in the search box. The search runs once the
// input has been quiet for the debounce period, then the count is announced.
func (s *LiveSearch) Input(ctx context.Context, term string) {
	ctx = context.WithoutCancel(ctx)
	s.debouncer.Trigger(func() {
		s.mu.Lock()
		s.filter.Search = term
		s.mu.Unlock()

		results := s.apply(ctx)
		s.announcer.Announce(ctx, ResultsAnnouncement(len(results)))
	})
}

// SearchNow applies term immediately, as the search button does.
func (s *LiveSearch) SearchNow(ctx context.Context, term string) []Doctor {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.filter.Search = term
	s.mu.Unlock()

	results := s.apply(ctx)
	s.announcer.Announce(ctx, ResultsAnnouncement(len(results)))
	return results
}

// SetDepartment applies the department filter immediately.
func (s *LiveSearch) SetDepartment(ctx context.Context, key string) []Doctor {
	s.mu.Lock()
	s.filter.Department = key
	s.mu.Unlock()
	return s.apply(ctx)
}

// SetLocation applies the location filter immediately.
func (s *LiveSearch) SetLocation(ctx context.Context, key string) []Doctor {
	s.mu.Lock()
	s.filter.Location = key
	s.mu.Unlock()
	return s.apply(ctx)
}

// Clear drops pending input and every filter.
func (s *LiveSearch) Clear(ctx context.Context) []Doctor {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.filter = Filter{}
	s.mu.Unlock()

	results := s.apply(ctx)
	s.announcer.Announce(ctx, "All filters cleared")
	return results
}

// Filter returns the filter currently in effect.
func (s *LiveSearch) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *LiveSearch) apply(ctx context.Context) []Doctor {
	f := s.Filter()
	results := s.dir.Filter(f)
	s.onResults(ctx, f, results)
	return results
}
