package forms

import (
	"fmt"
	"strings"

	"github.com/medcare-web/medcare/pkg/validator"
)

// DefaultMessages maps rule keys to message templates. A key prefixed with a
// role and a colon ("dateOfBirth:validation.date_not_after") applies to that
// role only and wins over the plain key. Templates may use {label} and any
// value the rule carries, such as {min}.
var DefaultMessages = map[string]string{
	"validation.required":    "{label} is required",
	"validation.email":       "Please enter a valid email address",
	"validation.phone":       "Please enter a valid phone number",
	"validation.date":        "Please enter a valid date",
	"validation.min_length":  "{label} must be at least {min} characters long",
	"validation.person_name": "{label} can only contain letters, spaces, hyphens, and apostrophes",

	"validation.date_not_after":  "{label} is too late",
	"validation.date_not_before": "{label} is too early",
	"validation.max_age":         "{label} is out of range",

	"dateOfBirth:validation.date_not_after":      "Date of birth cannot be in the future",
	"dateOfBirth:validation.max_age":             "Please enter a valid date of birth",
	"appointmentDate:validation.date_not_before": "Appointment date cannot be in the past",
	"appointmentDate:validation.date_not_after":  "Please select a date within the next 6 months",
}

func (e *Engine) render(f Field, verr validator.ValidationError) string {
	tmpl, ok := e.messages[string(f.Role)+":"+verr.TranslationKey]
	if !ok {
		tmpl, ok = e.messages[verr.TranslationKey]
	}
	if !ok {
		return f.DisplayLabel() + " " + verr.Message
	}

	pairs := []string{"{label}", f.DisplayLabel()}
	for k, v := range verr.TranslationValues {
		if k == "field" {
			continue
		}
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
