package submission

import (
	"strings"

	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/forms"
	"github.com/medcare-web/medcare/pkg/sanitizer"
)

// Summary is the appointment confirmation shown after a successful booking.
type Summary struct {
	Patient    string `json:"patient"`
	Department string `json:"department"`
	Doctor     string `json:"doctor,omitempty"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Type       string `json:"type"`
}

// Summarize builds the confirmation from submitted values. Labels come from
// the department table and from the form's select choices; user supplied
// text is reduced to plain text.
func Summarize(values map[string]string, form *forms.Form, table *directory.Table) Summary {
	choiceLabel := func(field, value string) string {
		if form == nil {
			return value
		}
		f, _ := form.Field(field)
		return f.ChoiceLabel(value)
	}

	dept := values[forms.FieldDepartment]
	s := Summary{
		Patient: sanitizer.PlainText(strings.TrimSpace(values[forms.FieldFirstName] + " " + values[forms.FieldLastName])),
		Date:    forms.FormatDate(values[forms.FieldAppointmentDate]),
		Time:    forms.FormatTime(values[forms.FieldAppointmentTime]),
		Type:    choiceLabel(forms.FieldAppointmentType, values[forms.FieldAppointmentType]),
	}

	s.Department = choiceLabel(forms.FieldDepartment, dept)
	if table != nil {
		s.Department = table.Label(dept)
	}

	if doctor := values[forms.FieldDoctor]; doctor != "" {
		s.Doctor = doctor
		if table != nil {
			if name, ok := table.DoctorName(dept, doctor); ok {
				s.Doctor = name
			}
		}
	}
	return s
}

// Lines renders the summary as labelled lines; the doctor line is omitted
// when no doctor was chosen.
func (s Summary) Lines() []string {
	lines := []string{
		"Patient: " + s.Patient,
		"Department: " + s.Department,
	}
	if s.Doctor != "" {
		lines = append(lines, "Doctor: "+s.Doctor)
	}
	return append(lines,
		"Date: "+s.Date,
		"Time: "+s.Time,
		"Type: "+s.Type,
	)
}
