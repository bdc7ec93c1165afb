package appointments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/medcare-web/medcare/handler"
	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/logger"
	"github.com/medcare-web/medcare/pkg/selection"
	"github.com/medcare-web/medcare/pkg/submission"
	"github.com/medcare-web/medcare/pkg/validator"
)

// Form slugs used in action URLs.
const (
	AppointmentSlug = "appointment"
	ContactSlug     = "contact"
)

type formDef struct {
	slug   string
	page   string
	title  string
	submit string
	build  func(*directory.Table) *forms.Form
}

func (d formDef) path() string { return "/forms/" + d.slug }

var formDefs = map[string]formDef{
	AppointmentSlug: {
		slug:   AppointmentSlug,
		page:   "/appointments",
		title:  "Book an Appointment",
		submit: "Schedule Appointment",
		build: func(t *directory.Table) *forms.Form {
			return forms.AppointmentForm(departmentChoices(t))
		},
	},
	ContactSlug: {
		slug:   ContactSlug,
		page:   "/contact",
		title:  "Contact Us",
		submit: "Send Message",
		build:  func(*directory.Table) *forms.Form { return forms.ContactForm() },
	},
}

func departmentChoices(t *directory.Table) []forms.Choice {
	depts := t.Departments()
	out := make([]forms.Choice, 0, len(depts))
	for _, d := range depts {
		out = append(out, forms.Choice{Value: d.Key, Label: d.Label})
	}
	return out
}

// FormRequest carries the values of a form action, read from Datastar
// signals or from a plain form post.
type FormRequest struct {
	Form   string            `path:"form" json:"-"`
	Field  string            `path:"field" json:"-"`
	Values map[string]string `json:"fields" form:"*"`
}

// PreselectRequest holds the ?department=&doctor= parameters of the appointment page.
type PreselectRequest struct {
	Department string `query:"department"`
	Doctor     string `query:"doctor"`
}

// formState is one request's view of a form.
type formState struct {
	def  formDef
	form *forms.Form
	sel  *selection.DoctorSelect
}

func (s *Service) newFormState(slug string) (*formState, error) {
	def, ok := formDefs[slug]
	if !ok {
		return nil, ErrUnknownForm
	}
	st := &formState{def: def, form: def.build(s.catalog.Table)}
	if _, ok := st.form.Field(forms.FieldDepartment); ok {
		sel, err := selection.New(st.form, s.catalog.Table, selection.WithLogger(s.log))
		if err != nil {
			return nil, err
		}
		st.sel = sel
	}
	return st, nil
}

// load rebuilds a form from submitted values the way the browser reached
// them: department and doctor through the dependent select, every other
// field through input handling.
func (s *Service) load(ctx context.Context, slug string, values map[string]string) (*formState, error) {
	st, err := s.newFormState(slug)
	if err != nil {
		return nil, err
	}
	if st.sel != nil {
		if err := st.sel.Preselect(ctx, values[forms.FieldDepartment], values[forms.FieldDoctor]); err != nil {
			return nil, err
		}
	}
	for _, f := range st.form.Fields() {
		if st.sel != nil && (f.Name == forms.FieldDepartment || f.Name == forms.FieldDoctor) {
			continue
		}
		raw, ok := values[f.Name]
		if !ok {
			continue
		}
		if _, err := st.form.Input(f.Name, raw); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (st *formState) params(banner string) FormParams {
	return FormParams{Form: st.form, Path: st.def.path(), Submit: st.def.submit, Banner: banner}
}

func (st *formState) values() map[string]string {
	out := make(map[string]string)
	for _, f := range st.form.Fields() {
		out[f.Name] = f.Value
	}
	return out
}

func (s *Service) group(st *formState, name string) handler.TemplPatch {
	f, _ := st.form.Field(name)
	return handler.Patch(s.views.Field(FieldParams{FormID: st.form.ID, Path: st.def.path(), Field: f}))
}

func (s *Service) controller(st *formState, a announce.Announcer, banner *submission.Banner) (*submission.Controller, error) {
	opts := []submission.ControllerOption{
		submission.WithTable(s.catalog.Table),
		submission.WithAnnouncer(a),
		submission.WithControllerLogger(s.log),
	}
	if st.sel != nil {
		opts = append(opts, submission.WithSelection(st.sel))
	}
	if banner != nil {
		opts = append(opts, submission.WithBanner(banner))
	}
	return submission.NewController(st.form, s.engine, s.seq, opts...)
}

func (s *Service) formPage(ctx handler.Context, st *formState, status int, p FormParams) handler.Response {
	page := s.views.Page(PageParams{
		Title: st.def.title,
		Theme: s.themeFor(ctx, nil).Current(),
		Body:  s.views.Form(p),
	})
	return handler.TemplStatus(status, handler.Patch(page))
}

func (s *Service) appointmentPage(ctx handler.Context, req PreselectRequest) handler.Response {
	st, err := s.newFormState(AppointmentSlug)
	if err != nil {
		return handler.Error(err)
	}
	if err := st.sel.Preselect(ctx, req.Department, req.Doctor); err != nil {
		return handler.Error(err)
	}
	return s.formPage(ctx, st, http.StatusOK, st.params(""))
}

func (s *Service) contactPage(ctx handler.Context, _ struct{}) handler.Response {
	st, err := s.newFormState(ContactSlug)
	if err != nil {
		return handler.Error(err)
	}
	return s.formPage(ctx, st, http.StatusOK, st.params(""))
}

// validateField handles blur: the field is checked and its group re-rendered.
func (s *Service) validateField(ctx handler.Context, req FormRequest) handler.Response {
	st, err := s.load(ctx, req.Form, req.Values)
	if err != nil {
		return handler.Error(err)
	}
	if _, err := s.engine.Check(st.form, req.Field); err != nil {
		return handler.Error(err)
	}
	return handler.TemplMulti(s.group(st, req.Field))
}

// formatPhone handles typing in a telephone field.
func (s *Service) formatPhone(ctx handler.Context, req FormRequest) handler.Response {
	st, err := s.load(ctx, req.Form, req.Values)
	if err != nil {
		return handler.Error(err)
	}
	stored, err := st.form.Input(req.Field, req.Values[req.Field])
	if err != nil {
		return handler.Error(err)
	}
	signals := map[string]any{"fields": map[string]string{req.Field: stored}}
	return handler.TemplSignals(signals, s.group(st, req.Field))
}

func (s *Service) changeDepartment(ctx handler.Context, req FormRequest) handler.Response {
	st, err := s.load(ctx, req.Form, req.Values)
	if err != nil {
		return handler.Error(err)
	}
	if st.sel == nil {
		return handler.Error(fmt.Errorf("%w: %s has no department", forms.ErrUnknownField, req.Form))
	}
	if err := st.sel.ChangeDepartment(ctx, req.Values[forms.FieldDepartment]); err != nil {
		return handler.Error(err)
	}
	signals := map[string]any{"fields": map[string]string{forms.FieldDoctor: ""}}
	return handler.TemplSignals(signals,
		s.group(st, forms.FieldDepartment),
		s.group(st, forms.FieldDoctor),
	)
}

func (s *Service) reset(ctx handler.Context, req FormRequest) handler.Response {
	st, err := s.newFormState(req.Form)
	if err != nil {
		return handler.Error(err)
	}
	if !handler.IsDataStar(ctx.Request()) {
		return handler.Redirect(st.def.page)
	}

	collector := &announce.Collector{}
	ctrl, err := s.controller(st, collector, nil)
	if err != nil {
		return handler.Error(err)
	}
	ctrl.Reset(ctx)

	return handler.TemplSignals(map[string]any{"fields": st.values(), "submitting": false},
		handler.Patch(s.views.Form(st.params(""))),
		handler.Patch(s.views.Announcement(collector.Last())),
	)
}

// submit runs the submit flow. Datastar actions get a stream that follows
// the submission to its end; JSON clients get the outcome; plain posts get
// the page back.
func (s *Service) submit(ctx handler.Context, req FormRequest) handler.Response {
	st, err := s.load(ctx, req.Form, req.Values)
	if err != nil {
		return handler.Error(err)
	}
	switch r := ctx.Request(); {
	case handler.IsDataStar(r):
		if s.seq.InFlight() {
			return handler.Error(s.seq.Reject(ctx, st.form.ID))
		}
		return s.submitStream(st)
	case handler.WantsJSON(r):
		return s.submitJSON(ctx, st)
	default:
		return s.submitPage(ctx, st)
	}
}

func (s *Service) submitStream(st *formState) handler.Response {
	return handler.SSE(func(stream handler.StreamContext) error {
		collector := &announce.Collector{}
		cleared := make(chan struct{}, 1)
		banner := submission.NewBanner(
			submission.WithBannerClock(s.clock),
			submission.WithBannerTTL(s.cfg.BannerTTL),
			submission.WithBannerOnChange(func(msg string) {
				if msg != "" {
					return
				}
				select {
				case cleared <- struct{}{}:
				default:
				}
			}),
		)
		ctrl, err := s.controller(st, collector, banner)
		if err != nil {
			return err
		}

		control := submission.ControlFunc(func(loading bool) {
			if err := stream.SendSignals(map[string]any{"submitting": loading}); err != nil {
				s.log.DebugContext(stream, "patch loading signal", logger.Error(err))
			}
		})
		fut, err := ctrl.Submit(stream, control)
		if err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				return s.streamInvalid(stream, st, collector.Last())
			}
			return err
		}

		outcome, err := fut.AwaitContext(stream)
		switch {
		case stream.Err() != nil:
			banner.Dismiss()
			return nil
		case err != nil:
			return s.streamFailure(stream, st, banner, cleared)
		}

		profile := submission.ProfileFor(st.form.ID)
		if err := stream.SendMultiple(
			handler.Patch(s.views.Form(st.params(""))),
			handler.Patch(s.views.Success(SuccessParams{FormID: st.form.ID, Message: profile.Success, Outcome: outcome})),
			handler.Patch(s.views.Announcement(collector.Last())),
		); err != nil {
			return err
		}
		return stream.SendSignals(map[string]any{"fields": st.values()})
	})
}

func (s *Service) streamInvalid(stream handler.StreamContext, st *formState, announcement string) error {
	fields := st.form.Fields()
	patches := make([]handler.TemplPatch, 0, len(fields)+2)
	for _, f := range fields {
		patches = append(patches, s.group(st, f.Name))
	}
	patches = append(patches, handler.Patch(s.views.Announcement(announcement)))
	if first, ok := st.form.FirstInvalid(); ok {
		patches = append(patches, handler.Patch(focusScript(first.Name),
			handler.WithTarget("body"),
			handler.WithPatchMode(handler.PatchAppend),
		))
	}
	return stream.SendMultiple(patches...)
}

// streamFailure shows the banner and keeps the stream open until it expires.
func (s *Service) streamFailure(stream handler.StreamContext, st *formState, banner *submission.Banner, cleared <-chan struct{}) error {
	msg := submission.ProfileFor(st.form.ID).Failure
	if err := stream.SendComponent(s.views.Banner(BannerParams{FormID: st.form.ID, Message: msg})); err != nil {
		return err
	}
	select {
	case <-cleared:
	case <-stream.Done():
		banner.Dismiss()
		return nil
	}
	return stream.SendComponent(s.views.Banner(BannerParams{FormID: st.form.ID}))
}

func (s *Service) submitJSON(ctx handler.Context, st *formState) handler.Response {
	ctrl, err := s.controller(st, announce.Logger(s.log), nil)
	if err != nil {
		return handler.Error(err)
	}
	fut, err := ctrl.Submit(ctx, nil)
	if err != nil {
		return handler.Error(err)
	}
	outcome, err := fut.AwaitContext(ctx)
	if err != nil {
		return handler.Error(submissionFailed(st.form.ID, err))
	}
	return handler.JSON(outcome, handler.WithJSONStatus(http.StatusCreated))
}

func (s *Service) submitPage(ctx handler.Context, st *formState) handler.Response {
	ctrl, err := s.controller(st, announce.Logger(s.log), nil)
	if err != nil {
		return handler.Error(err)
	}
	fut, err := ctrl.Submit(ctx, nil)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return s.formPage(ctx, st, http.StatusUnprocessableEntity, st.params(""))
		}
		return handler.Error(err)
	}

	outcome, err := fut.AwaitContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return handler.Error(err)
		}
		return s.formPage(ctx, st, http.StatusBadGateway, st.params(submission.ProfileFor(st.form.ID).Failure))
	}

	p := st.params("")
	p.Success = &SuccessParams{FormID: st.form.ID, Message: submission.ProfileFor(st.form.ID).Success, Outcome: outcome}
	return s.formPage(ctx, st, http.StatusOK, p)
}

func submissionFailed(formID string, err error) handler.HTTPError {
	return handler.HTTPError{
		Code:    http.StatusBadGateway,
		Key:     "submission_failed",
		Message: submission.ProfileFor(formID).Failure,
		Err:     err,
	}
}

// focusScript moves focus to the element with the given id and removes itself.
func focusScript(id string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		quoted, err := json.Marshal(id)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<script data-effect="el.remove()">document.getElementById(%s)?.focus()</script>`, quoted)
		return err
	})
}
