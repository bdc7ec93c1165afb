package forms

import (
	"strings"

	"github.com/medcare-web/medcare/pkg/sanitizer"
)

// Kind is the declared input type of a field.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
)

// Role selects domain specific rules on top of the kind rules.
type Role string

const (
	RoleNone            Role = ""
	RoleFirstName       Role = "firstName"
	RoleLastName        Role = "lastName"
	RoleEmergencyName   Role = "emergencyName"
	RoleDateOfBirth     Role = "dateOfBirth"
	RoleAppointmentDate Role = "appointmentDate"
	RoleReason          Role = "reason"
	RoleMessage         Role = "message"
)

// IsName reports whether the role holds a person's name.
func (r Role) IsName() bool {
	switch r {
	case RoleFirstName, RoleLastName, RoleEmergencyName:
		return true
	}
	return false
}

// IsFreeText reports whether the role holds a free text description.
func (r Role) IsFreeText() bool {
	return r == RoleReason || r == RoleMessage
}

// Choice is an option of a select field.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is a named input together with the display state the engine writes back.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"kind"`
	Role     Role     `json:"role,omitempty"`
	Required bool     `json:"required"`
	Value    string   `json:"value"`
	Choices  []Choice `json:"choices,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
	Help     string   `json:"help,omitempty"`

	Invalid bool   `json:"invalid,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DisplayLabel is the label used in messages: the label without the
// required marker, or the field name when there is no label.
func (f Field) DisplayLabel() string {
	if label := sanitizer.Label(f.Label); label != "" {
		return label
	}
	return f.Name
}

// TrimmedValue is the value the rules see.
func (f Field) TrimmedValue() string {
	return strings.TrimSpace(f.Value)
}

// ChoiceLabel returns the label of the choice with the given value, or the value itself.
func (f Field) ChoiceLabel(value string) string {
	for _, c := range f.Choices {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

func (f Field) clone() Field {
	f.Choices = append([]Choice(nil), f.Choices...)
	return f
}

// normalizeInput applies keystroke formatting for the field kind.
func normalizeInput(kind Kind, raw string) string {
	if kind == KindTel {
		return sanitizer.FormatPhone(raw)
	}
	return raw
}
