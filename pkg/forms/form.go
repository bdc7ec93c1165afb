package forms

import (
	"fmt"
	"sync"

	"github.com/medcare-web/medcare/pkg/validator"
)

// Form is an ordered set of fields with their display state.
// It is safe for concurrent use; accessors return copies.
type Form struct {
	ID string

	mu     sync.RWMutex
	fields []Field
	index  map[string]int
}

// NewForm creates a form from field definitions. Names must be unique.
func NewForm(id string, fields ...Field) (*Form, error) {
	f := &Form{ID: id, index: make(map[string]int, len(fields))}
	for _, field := range fields {
		if field.Name == "" {
			return nil, fmt.Errorf("%w: empty field name", ErrInvalidForm)
		}
		if _, dup := f.index[field.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidForm, field.Name)
		}
		f.index[field.Name] = len(f.fields)
		f.fields = append(f.fields, field.clone())
	}
	return f, nil
}

// MustForm is NewForm that panics on invalid definitions.
func MustForm(id string, fields ...Field) *Form {
	f, err := NewForm(id, fields...)
	if err != nil {
		panic(err)
	}
	return f
}

// Field returns a copy of the named field.
func (f *Form) Field(name string) (Field, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	i, ok := f.index[name]
	if !ok {
		return Field{}, false
	}
	return f.fields[i].clone(), true
}

// Fields returns copies of every field in declaration order.
func (f *Form) Fields() []Field {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]Field, len(f.fields))
	for i, field := range f.fields {
		out[i] = field.clone()
	}
	return out
}

// Value returns the raw value of the named field, or "" when it does not exist.
func (f *Form) Value(name string) string {
	field, _ := f.Field(name)
	return field.Value
}

// Values returns the trimmed value of every field keyed by name.
func (f *Form) Values() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make(map[string]string, len(f.fields))
	for _, field := range f.fields {
		out[field.Name] = field.TrimmedValue()
	}
	return out
}

// Set assigns a value programmatically. No input formatting is applied and
// the display state is left alone.
func (f *Form) Set(name, value string) error {
	return f.update(name, func(field *Field) {
		field.Value = value
	})
}

// Input handles an input event: the value is formatted for the field kind
// (telephone numbers get progressive punctuation) and any shown error is cleared.
// It returns the value stored in the field.
func (f *Form) Input(name, raw string) (string, error) {
	var stored string
	err := f.update(name, func(field *Field) {
		field.Value = normalizeInput(field.Kind, raw)
		field.Invalid = false
		field.Error = ""
		stored = field.Value
	})
	return stored, err
}

// SetError shows message on the named field.
func (f *Form) SetError(name, message string) error {
	return f.update(name, func(field *Field) {
		field.Invalid = true
		field.Error = message
	})
}

// ClearError removes any shown error from the named field.
func (f *Form) ClearError(name string) error {
	return f.update(name, func(field *Field) {
		field.Invalid = false
		field.Error = ""
	})
}

// SetChoices replaces the choices of a select field.
func (f *Form) SetChoices(name string, choices []Choice) error {
	return f.update(name, func(field *Field) {
		field.Choices = append([]Choice(nil), choices...)
	})
}

// SetDisabled locks or unlocks a field.
func (f *Form) SetDisabled(name string, disabled bool) error {
	return f.update(name, func(field *Field) {
		field.Disabled = disabled
	})
}

// SetHelp replaces the help text of a field.
func (f *Form) SetHelp(name, help string) error {
	return f.update(name, func(field *Field) {
		field.Help = help
	})
}

// ClearErrors removes the display state of every field.
func (f *Form) ClearErrors() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.fields {
		f.fields[i].Invalid = false
		f.fields[i].Error = ""
	}
}

// Reset clears every value. Display state is left alone, the way a native
// form reset keeps error markers; call ClearErrors as well for a full reset.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.fields {
		f.fields[i].Value = ""
	}
}

// FirstInvalid returns the first field currently flagged invalid, the focus target after a failed submit.
func (f *Form) FirstInvalid() (Field, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, field := range f.fields {
		if field.Invalid {
			return field.clone(), true
		}
	}
	return Field{}, false
}

// Errors returns the errors currently shown, in field order.
func (f *Form) Errors() validator.ValidationErrors {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var errs validator.ValidationErrors
	for _, field := range f.fields {
		if field.Invalid {
			errs.Add(validator.ValidationError{Field: field.Name, Message: field.Error})
		}
	}
	return errs
}

func (f *Form) apply(name string, res Result) {
	_ = f.update(name, func(field *Field) {
		field.Invalid = !res.Valid
		field.Error = res.Message
	})
}

func (f *Form) update(name string, fn func(*Field)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	i, ok := f.index[name]
	if !ok {
		return unknownField(name)
	}
	fn(&f.fields[i])
	return nil
}
