package validator

import "regexp"

var (
	// One @ with no whitespace around it and at least one dot in the domain part.
	emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Canonical US phone shape produced by sanitizer.FormatPhone.
	formattedPhoneRegex = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
)

// ValidEmail validates the local@domain.tld shape of an email address.
// It does not attempt RFC 5322 parsing.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailShapeRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidFormattedPhone validates the exact "(XXX) XXX-XXXX" shape.
func ValidFormattedPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return formattedPhoneRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid phone number",
			TranslationKey: "validation.phone",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
