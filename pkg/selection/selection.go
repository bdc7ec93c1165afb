package selection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/logger"
	"github.com/medcare-web/medcare/pkg/statemachine"
)

// States of the doctor select.
const (
	Disabled statemachine.State = "disabled"
	Enabled  statemachine.State = "enabled"
)

// Events driving the doctor select.
const (
	EventDepartmentChosen  statemachine.Event = "department_chosen"
	EventDepartmentCleared statemachine.Event = "department_cleared"
)

// DoctorSelect keeps the doctor select of a form consistent with its department.
type DoctorSelect struct {
	mu      sync.Mutex
	form    *forms.Form
	table   *directory.Table
	machine *statemachine.Machine
	log     *slog.Logger

	departmentField string
	doctorField     string
	department      string
}

// Option configures a DoctorSelect.
type Option func(*DoctorSelect)

// WithFields overrides the department and doctor field names.
func WithFields(department, doctor string) Option {
	return func(s *DoctorSelect) {
		s.departmentField = department
		s.doctorField = doctor
	}
}

// WithLogger logs every state change at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *DoctorSelect) {
		s.log = l
	}
}

// New binds a dependent select to form. The form must contain both fields.
func New(form *forms.Form, table *directory.Table, opts ...Option) (*DoctorSelect, error) {
	if form == nil || table == nil {
		return nil, ErrMissingDependency
	}

	s := &DoctorSelect{
		form:            form,
		table:           table,
		departmentField: forms.FieldDepartment,
		doctorField:     forms.FieldDoctor,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logger.With(s.log, "selection", logger.Form(form.ID))

	for _, name := range []string{s.departmentField, s.doctorField} {
		if _, ok := form.Field(name); !ok {
			return nil, fmt.Errorf("%w: form %q has no field %q", ErrMissingDependency, form.ID, name)
		}
	}

	enable := statemachine.WithAction(s.enable)
	disable := statemachine.WithAction(s.disable)

	m, err := statemachine.New(Disabled,
		statemachine.WithTransition(Disabled, Enabled, EventDepartmentChosen, enable),
		statemachine.WithTransition(Enabled, Enabled, EventDepartmentChosen, enable),
		statemachine.WithTransition(Enabled, Disabled, EventDepartmentCleared, disable),
		statemachine.WithTransition(Disabled, Disabled, EventDepartmentCleared, disable),
		statemachine.WithListener(func(ctx context.Context, from, to statemachine.State, event statemachine.Event, data any) {
			s.log.DebugContext(ctx, "doctor select updated",
				logger.Transition(string(from), string(to), string(event)),
				logger.Department(fmt.Sprint(data)),
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	s.machine = m
	return s, nil
}

// ChangeDepartment handles a change of the department select. A known key
// enables the doctor select with that department's doctors; an empty or
// unknown key disables it. The doctor is cleared and its error removed either way.
func (s *DoctorSelect) ChangeDepartment(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.change(ctx, key)
}

func (s *DoctorSelect) change(ctx context.Context, key string) error {
	event := EventDepartmentCleared
	if key != "" && s.table.Has(key) {
		event = EventDepartmentChosen
	}
	if err := s.machine.Fire(ctx, event, key); err != nil {
		return fmt.Errorf("selection: change department to %q: %w", key, err)
	}
	if event == EventDepartmentChosen {
		s.department = key
	} else {
		s.department = ""
	}
	return nil
}

func (s *DoctorSelect) enable(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	key, _ := data.(string)
	entries, _ := s.table.Doctors(key)

	choices := make([]forms.Choice, 0, len(entries)+1)
	choices = append(choices, forms.DoctorPlaceholder)
	for _, e := range entries {
		choices = append(choices, forms.Choice{Value: e.ID, Label: e.Name})
	}
	return s.apply(key, choices, false, forms.DoctorHelpEnabled)
}

func (s *DoctorSelect) disable(_ context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
	key, _ := data.(string)
	return s.apply(key, []forms.Choice{forms.DoctorPlaceholder}, true, forms.DoctorHelpDisabled)
}

func (s *DoctorSelect) apply(department string, choices []forms.Choice, disabled bool, help string) error {
	for _, step := range []func() error{
		func() error { return s.form.Set(s.departmentField, department) },
		func() error { return s.form.SetChoices(s.doctorField, choices) },
		func() error { return s.form.Set(s.doctorField, "") },
		func() error { return s.form.SetDisabled(s.doctorField, disabled) },
		func() error { return s.form.SetHelp(s.doctorField, help) },
		func() error { return s.form.ClearError(s.doctorField) },
	} {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Select chooses a doctor of the current department. An empty id selects the
// placeholder. Ids the department does not offer are rejected.
func (s *DoctorSelect) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.choose(id)
}

func (s *DoctorSelect) choose(id string) error {
	if id != "" {
		if !s.machine.Is(Enabled) {
			return ErrSelectDisabled
		}
		if !s.table.Offers(s.department, id) {
			return fmt.Errorf("%w: %q in %q", ErrNotOffered, id, s.department)
		}
	}
	if err := s.form.Set(s.doctorField, id); err != nil {
		return err
	}
	return s.form.ClearError(s.doctorField)
}

// Preselect applies a department and doctor taken from the page URL. The
// doctor is applied only when the department offers it; otherwise it is
// ignored and the department choice stands.
func (s *DoctorSelect) Preselect(ctx context.Context, department, doctor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if department == "" {
		return nil
	}
	if err := s.change(ctx, department); err != nil {
		return err
	}
	if doctor == "" || !s.table.Offers(s.department, doctor) {
		return nil
	}
	return s.choose(doctor)
}

// Reset returns the select to its disabled state with no department.
func (s *DoctorSelect) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.change(ctx, "")
}

// State returns the current state.
func (s *DoctorSelect) State() statemachine.State {
	return s.machine.Current()
}

// Enabled reports whether doctors can be chosen.
func (s *DoctorSelect) Enabled() bool {
	return s.machine.Is(Enabled)
}

// Department returns the department whose doctors are offered, or "".
func (s *DoctorSelect) Department() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.department
}

// Choices returns the current options of the doctor select.
func (s *DoctorSelect) Choices() []forms.Choice {
	f, _ := s.form.Field(s.doctorField)
	return f.Choices
}
