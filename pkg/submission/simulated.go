package submission

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/medcare-web/medcare/pkg/timer"
)

// DefaultDelay is how long the simulated submitter takes to answer.
const DefaultDelay = 2 * time.Second

// SimulatedSubmitter stands in for a booking backend: it waits for a fixed
// delay on its clock and accepts the request.
type SimulatedSubmitter struct {
	clock timer.Clock
	delay time.Duration
	fail  func(Request) error
}

// SimulatedOption configures a SimulatedSubmitter.
type SimulatedOption func(*SimulatedSubmitter)

func WithDelay(d time.Duration) SimulatedOption {
	return func(s *SimulatedSubmitter) {
		if d >= 0 {
			s.delay = d
		}
	}
}

func WithClock(c timer.Clock) SimulatedOption {
	return func(s *SimulatedSubmitter) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithFailure makes every submission fail with ErrSimulatedFailure after the delay.
func WithFailure(enabled bool) SimulatedOption {
	return func(s *SimulatedSubmitter) {
		if !enabled {
			s.fail = nil
			return
		}
		s.fail = func(Request) error { return ErrSimulatedFailure }
	}
}

// WithFailureFunc decides per request whether the submission fails.
func WithFailureFunc(fn func(Request) error) SimulatedOption {
	return func(s *SimulatedSubmitter) { s.fail = fn }
}

func NewSimulatedSubmitter(opts ...SimulatedOption) *SimulatedSubmitter {
	s := &SimulatedSubmitter{clock: timer.Real(), delay: DefaultDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit waits for the delay, or for ctx to be done, then answers.
func (s *SimulatedSubmitter) Submit(ctx context.Context, req Request) (Receipt, error) {
	if s.delay > 0 {
		elapsed := make(chan struct{})
		t := s.clock.AfterFunc(s.delay, func() { close(elapsed) })
		select {
		case <-elapsed:
		case <-ctx.Done():
			t.Stop()
			return Receipt{}, ctx.Err()
		}
	}

	if s.fail != nil {
		if err := s.fail(req); err != nil {
			return Receipt{}, err
		}
	}

	return Receipt{
		ID:          uuid.NewString(),
		FormID:      req.FormID,
		SubmittedAt: s.clock.Now(),
		Values:      maps.Clone(req.Values),
	}, nil
}
