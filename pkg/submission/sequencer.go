package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/medcare-web/medcare/pkg/async"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/logger"
	"github.com/medcare-web/medcare/pkg/sanitizer"
	"github.com/medcare-web/medcare/pkg/statemachine"
	"github.com/medcare-web/medcare/pkg/timer"
)

// Sequencer states.
const (
	Idle       statemachine.State = "idle"
	Submitting statemachine.State = "submitting"
	Succeeded  statemachine.State = "succeeded"
	Failed     statemachine.State = "failed"
)

const (
	eventSubmit  statemachine.Event = "submit"
	eventSucceed statemachine.Event = "succeed"
	eventFail    statemachine.Event = "fail"
	eventSettle  statemachine.Event = "settle"
)

// Request is the snapshot of a form handed to a Submitter.
type Request struct {
	FormID string
	Values map[string]string
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID          string            `json:"id"`
	FormID      string            `json:"form"`
	SubmittedAt time.Time         `json:"submitted_at"`
	Values      map[string]string `json:"-"`
}

// Submitter delivers a form snapshot. It may block; the Sequencer runs it
// in its own goroutine.
type Submitter interface {
	Submit(ctx context.Context, req Request) (Receipt, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, req Request) (Receipt, error)

func (f SubmitterFunc) Submit(ctx context.Context, req Request) (Receipt, error) {
	return f(ctx, req)
}

// Control is the loading indicator of the submitting surface.
type Control interface {
	SetLoading(loading bool)
}

// ControlFunc adapts a function to Control.
type ControlFunc func(loading bool)

func (f ControlFunc) SetLoading(loading bool) { f(loading) }

// Hooks are called around one submission. Every field is optional.
// OnSuccess and OnFailure run before the gate is released.
type Hooks struct {
	Control   Control
	OnSuccess func(ctx context.Context, receipt Receipt)
	OnFailure func(ctx context.Context, err error)
}

// Metrics records submission outcomes. Outcomes are "succeeded", "failed"
// and "rejected".
type Metrics interface {
	SubmissionStarted(form string)
	SubmissionFinished(form, outcome string, took time.Duration)
}

// Gate reports whether a submission is in flight.
type Gate interface {
	InFlight() bool
}

// Sequencer runs at most one submission at a time. One Sequencer is shared
// by every form of a process, which makes it the process wide in-flight gate.
type Sequencer struct {
	machine   *statemachine.Machine
	submitter Submitter
	clock     timer.Clock
	metrics   Metrics
	log       *slog.Logger
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithSequencerClock sets the clock used to time submissions.
func WithSequencerClock(c timer.Clock) SequencerOption {
	return func(s *Sequencer) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithMetrics(m Metrics) SequencerOption {
	return func(s *Sequencer) { s.metrics = m }
}

func WithLogger(l *slog.Logger) SequencerOption {
	return func(s *Sequencer) { s.log = l }
}

// NewSequencer creates an idle sequencer delivering through submitter.
func NewSequencer(submitter Submitter, opts ...SequencerOption) (*Sequencer, error) {
	if submitter == nil {
		return nil, fmt.Errorf("%w: submitter", ErrMissingDependency)
	}
	s := &Sequencer{submitter: submitter, clock: timer.Real()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.With(s.log, "submission")

	m, err := statemachine.New(Idle,
		statemachine.WithTransition(Idle, Submitting, eventSubmit),
		statemachine.WithTransition(Submitting, Succeeded, eventSucceed),
		statemachine.WithTransition(Submitting, Failed, eventFail),
		statemachine.WithTransition(Succeeded, Idle, eventSettle),
		statemachine.WithTransition(Failed, Idle, eventSettle),
	)
	if err != nil {
		return nil, err
	}
	s.machine = m
	return s, nil
}

// State returns the current state.
func (s *Sequencer) State() statemachine.State {
	return s.machine.Current()
}

// InFlight reports whether a submission has started and not yet settled.
func (s *Sequencer) InFlight() bool {
	return !s.machine.Is(Idle)
}

// Reject records a submit attempt for formID turned away by the in-flight
// gate and returns ErrInFlight. Callers that check InFlight before Run use it
// so the rejection is counted.
func (s *Sequencer) Reject(ctx context.Context, formID string) error {
	if s.metrics != nil {
		s.metrics.SubmissionFinished(formID, "rejected", 0)
	}
	s.log.DebugContext(ctx, "submission rejected", logger.Form(formID))
	return ErrInFlight
}

// Run starts a submission. It fails fast with ErrInFlight, without calling
// any hook, when another submission has not settled. Otherwise loading is
// switched on before the submitter runs and switched off after settlement on
// every path, panics in the submitter included.
//
// Cancelling ctx is passed on to the submitter; the settlement still runs.
func (s *Sequencer) Run(ctx context.Context, req Request, hooks Hooks) (*async.Future[Receipt], error) {
	if err := s.machine.Fire(ctx, eventSubmit, req.FormID); err != nil {
		if statemachine.IsNoTransitionAvailableError(err) {
			return nil, s.Reject(ctx, req.FormID)
		}
		if s.metrics != nil {
			s.metrics.SubmissionFinished(req.FormID, "rejected", 0)
		}
		return nil, err
	}

	if hooks.Control != nil {
		hooks.Control.SetLoading(true)
	}
	if s.metrics != nil {
		s.metrics.SubmissionStarted(req.FormID)
	}
	started := s.clock.Now()
	s.log.DebugContext(ctx, "submission started", logger.Form(req.FormID))

	return async.Go(context.WithoutCancel(ctx), func(context.Context) (receipt Receipt, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", async.ErrPanic, r)
			}
			s.settle(ctx, req, hooks, receipt, err, started)
		}()
		return s.submitter.Submit(ctx, req)
	}), nil
}

func (s *Sequencer) settle(ctx context.Context, req Request, hooks Hooks, receipt Receipt, err error, started time.Time) {
	if hooks.Control != nil {
		defer hooks.Control.SetLoading(false)
	}
	defer s.release(ctx)

	outcome, event := "succeeded", eventSucceed
	if err != nil {
		outcome, event = "failed", eventFail
	}
	if ferr := s.machine.Fire(ctx, event, req.FormID); ferr != nil {
		s.log.ErrorContext(ctx, "submission state", logger.Error(ferr))
	}

	took := s.clock.Now().Sub(started)
	if s.metrics != nil {
		s.metrics.SubmissionFinished(req.FormID, outcome, took)
	}

	if err != nil {
		s.log.WarnContext(ctx, "submission failed", logger.Form(req.FormID), logger.Duration(took), logger.Error(err))
		if hooks.OnFailure != nil {
			hooks.OnFailure(ctx, err)
		}
		return
	}

	attrs := []any{logger.Form(req.FormID), logger.Receipt(receipt.ID), logger.Duration(took)}
	if phone := req.Values[forms.FieldPhone]; phone != "" {
		attrs = append(attrs, logger.Phone(sanitizer.MaskPhone(phone)))
	}
	s.log.InfoContext(ctx, "submission succeeded", attrs...)
	if hooks.OnSuccess != nil {
		hooks.OnSuccess(ctx, receipt)
	}
}

func (s *Sequencer) release(ctx context.Context) {
	if err := s.machine.Fire(ctx, eventSettle, nil); err != nil {
		s.log.ErrorContext(ctx, "submission release", logger.Error(err))
	}
}
