package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/async"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/logger"
	"github.com/medcare-web/medcare/pkg/selection"
)

// Announcements made by the controller.
const (
	MsgCorrectErrors = "Please correct the errors in the form"
	MsgFormReset     = "Form has been reset"
)

// Profile holds the per form texts of the submit flow.
type Profile struct {
	Success   string
	Failure   string
	Summarize bool
}

var (
	AppointmentProfile = Profile{
		Success:   "Appointment scheduled successfully",
		Failure:   "There was an error scheduling your appointment. Please try again.",
		Summarize: true,
	}
	ContactProfile = Profile{
		Success: "Message sent successfully",
		Failure: "There was an error sending your message. Please try again.",
	}
)

// ProfileFor returns the profile of a known form id, or the contact profile.
func ProfileFor(formID string) Profile {
	if formID == forms.AppointmentFormID {
		return AppointmentProfile
	}
	return ContactProfile
}

// Outcome is what a successful submit hands to the success surface.
type Outcome struct {
	Receipt Receipt `json:"receipt"`
	// Summary is set for forms whose profile asks for one.
	Summary *Summary `json:"summary,omitempty"`
}

// Controller runs the submit and reset flows of one form.
type Controller struct {
	form      *forms.Form
	engine    *forms.Engine
	seq       *Sequencer
	selection *selection.DoctorSelect
	table     *directory.Table
	announcer announce.Announcer
	banner    *Banner
	profile   Profile
	surface   func(ctx context.Context, outcome Outcome)
	log       *slog.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSelection resets the dependent doctor select together with the form.
func WithSelection(s *selection.DoctorSelect) ControllerOption {
	return func(c *Controller) { c.selection = s }
}

// WithTable supplies the labels used in the appointment summary.
func WithTable(t *directory.Table) ControllerOption {
	return func(c *Controller) { c.table = t }
}

func WithAnnouncer(a announce.Announcer) ControllerOption {
	return func(c *Controller) { c.announcer = a }
}

func WithBanner(b *Banner) ControllerOption {
	return func(c *Controller) { c.banner = b }
}

func WithProfile(p Profile) ControllerOption {
	return func(c *Controller) { c.profile = p }
}

// WithSuccessSurface registers the callback that shows the success surface.
// It runs before the form is reset.
func WithSuccessSurface(fn func(ctx context.Context, outcome Outcome)) ControllerOption {
	return func(c *Controller) { c.surface = fn }
}

func WithControllerLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.log = l }
}

// NewController binds the submit flow to form. The profile defaults to the
// one matching the form id.
func NewController(form *forms.Form, engine *forms.Engine, seq *Sequencer, opts ...ControllerOption) (*Controller, error) {
	switch {
	case form == nil:
		return nil, fmt.Errorf("%w: form", ErrMissingDependency)
	case engine == nil:
		return nil, fmt.Errorf("%w: engine", ErrMissingDependency)
	case seq == nil:
		return nil, fmt.Errorf("%w: sequencer", ErrMissingDependency)
	}

	c := &Controller{
		form:    form,
		engine:  engine,
		seq:     seq,
		profile: ProfileFor(form.ID),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.announcer = announce.OrNop(c.announcer)
	if c.banner == nil {
		c.banner = NewBanner()
	}
	c.log = logger.With(c.log, "submission", logger.Form(form.ID))
	return c, nil
}

// Form returns the controlled form.
func (c *Controller) Form() *forms.Form { return c.form }

// Banner returns the error banner of the flow.
func (c *Controller) Banner() *Banner { return c.banner }

// Submit runs one submit attempt:
//
//   - while any submission is in flight it returns ErrInFlight and changes nothing;
//   - an invalid form gets every error displayed, the correction prompt is
//     announced and the validation errors are returned;
//   - otherwise the values are handed to the sequencer. On success the
//     success surface is shown, the form is reset and the success message is
//     announced. On failure the error banner is shown and the values stay.
//
// The returned future completes after settlement.
func (c *Controller) Submit(ctx context.Context, control Control) (*async.Future[Outcome], error) {
	if c.seq.InFlight() {
		return nil, c.seq.Reject(ctx, c.form.ID)
	}

	if !c.engine.ValidateForm(c.form) {
		c.announcer.Announce(ctx, MsgCorrectErrors)
		return nil, c.form.Errors()
	}

	var outcome Outcome
	req := Request{FormID: c.form.ID, Values: c.form.Values()}
	fut, err := c.seq.Run(ctx, req, Hooks{
		Control: control,
		OnSuccess: func(ctx context.Context, receipt Receipt) {
			outcome = c.succeed(ctx, req, receipt)
		},
		OnFailure: func(ctx context.Context, err error) {
			c.banner.Show(c.profile.Failure)
		},
	})
	if err != nil {
		return nil, err
	}

	return async.Go(context.WithoutCancel(ctx), func(context.Context) (Outcome, error) {
		if _, err := fut.Await(); err != nil {
			return Outcome{}, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
		}
		return outcome, nil
	}), nil
}

func (c *Controller) succeed(ctx context.Context, req Request, receipt Receipt) Outcome {
	outcome := Outcome{Receipt: receipt}
	if c.profile.Summarize {
		s := Summarize(req.Values, c.form, c.table)
		outcome.Summary = &s
	}

	if c.surface != nil {
		c.surface(ctx, outcome)
	}
	c.clear(ctx)
	c.announcer.Announce(ctx, c.profile.Success)
	return outcome
}

// Reset clears values, errors and the dependent select, then announces it.
func (c *Controller) Reset(ctx context.Context) {
	c.clear(ctx)
	c.announcer.Announce(ctx, MsgFormReset)
}

func (c *Controller) clear(ctx context.Context) {
	c.form.Reset()
	c.form.ClearErrors()
	if c.selection != nil {
		if err := c.selection.Reset(ctx); err != nil {
			c.log.ErrorContext(ctx, "reset doctor select", logger.Error(err))
		}
	}
}
