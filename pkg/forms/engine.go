package forms

import (
	"maps"

	"github.com/medcare-web/medcare/pkg/timer"
	"github.com/medcare-web/medcare/pkg/validator"
)

// Rule limits used by the engine.
const (
	MinNameLength     = 2
	MinFreeTextLength = 10
	MaxAgeYears       = 150
	BookingWindow     = 6 // months
)

// Result is the outcome of validating one field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	// Key identifies the failed rule, e.g. "validation.required".
	Key string `json:"key,omitempty"`
}

// Observer is notified of every field validated through a form.
type Observer interface {
	FieldValidated(form, field string, result Result)
}

// Engine validates fields against the rule table. It holds no per-form
// state; the clock only supplies "today" for the date rules.
type Engine struct {
	clock    timer.Clock
	messages map[string]string
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for date rules.
func WithClock(c timer.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithMessages overrides message templates by key. See DefaultMessages.
func WithMessages(messages map[string]string) Option {
	return func(e *Engine) {
		maps.Copy(e.messages, messages)
	}
}

// WithObserver registers an observer for form validations.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// New creates an engine with the default messages and the real clock.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:    timer.Real(),
		messages: maps.Clone(DefaultMessages),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateField checks a field snapshot: required first, then kind rules,
// then role rules. Only the first failure is reported.
func (e *Engine) ValidateField(f Field) Result {
	value := f.TrimmedValue()

	if value == "" {
		if f.Required {
			return e.fail(f, validator.RequiredString(f.Name, value).Error)
		}
		return Result{Valid: true}
	}

	if verr := validator.First(e.kindRules(f, value)...); verr != nil {
		return e.fail(f, *verr)
	}
	if verr := validator.First(roleRules(f, value)...); verr != nil {
		return e.fail(f, *verr)
	}
	return Result{Valid: true}
}

func (e *Engine) kindRules(f Field, value string) []validator.Rule {
	switch f.Kind {
	case KindEmail:
		return []validator.Rule{validator.ValidEmail(f.Name, value)}
	case KindTel:
		return []validator.Rule{validator.ValidFormattedPhone(f.Name, value)}
	case KindDate:
		return e.dateRules(f, value)
	}
	return nil
}

func (e *Engine) dateRules(f Field, value string) []validator.Rule {
	if f.Role != RoleDateOfBirth && f.Role != RoleAppointmentDate {
		return nil
	}

	now := e.clock.Now()
	date, err := validator.ParseDate(value, now.Location())
	if err != nil {
		return []validator.Rule{validator.ValidDate(f.Name, value)}
	}
	today := validator.DateOnly(now)

	if f.Role == RoleDateOfBirth {
		return []validator.Rule{
			validator.NotAfterDate(f.Name, date, today),
			validator.MaxAgeYears(f.Name, date, today, MaxAgeYears),
		}
	}
	return []validator.Rule{
		validator.NotBeforeDate(f.Name, date, today),
		validator.NotAfterDate(f.Name, date, today.AddDate(0, BookingWindow, 0)),
	}
}

func roleRules(f Field, value string) []validator.Rule {
	switch {
	case f.Role.IsName():
		return []validator.Rule{
			validator.MinLenString(f.Name, value, MinNameLength),
			validator.PersonName(f.Name, value),
		}
	case f.Role.IsFreeText():
		return []validator.Rule{
			validator.MinLenString(f.Name, value, MinFreeTextLength),
		}
	}
	return nil
}

func (e *Engine) fail(f Field, verr validator.ValidationError) Result {
	return Result{
		Valid:   false,
		Message: e.render(f, verr),
		Key:     verr.TranslationKey,
	}
}

// Check validates the named field of form and writes the outcome to its display state.
func (e *Engine) Check(form *Form, name string) (Result, error) {
	f, ok := form.Field(name)
	if !ok {
		return Result{}, unknownField(name)
	}
	res := e.ValidateField(f)
	form.apply(name, res)
	e.observe(form.ID, name, res)
	return res, nil
}

// ValidateForm validates every field of form, writes every display state and
// reports whether all passed. It never stops at the first invalid field.
func (e *Engine) ValidateForm(form *Form) bool {
	valid := true
	for _, f := range form.Fields() {
		res := e.ValidateField(f)
		form.apply(f.Name, res)
		e.observe(form.ID, f.Name, res)
		if !res.Valid {
			valid = false
		}
	}
	return valid
}

func (e *Engine) observe(form, field string, res Result) {
	if e.observer != nil {
		e.observer.FieldValidated(form, field, res)
	}
}
