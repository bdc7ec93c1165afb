package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var personNameRegex = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// MinLenString validates the length of a string in characters, not bytes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// PersonName allows ASCII letters, whitespace, hyphens and apostrophes only.
func PersonName(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return personNameRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "can only contain letters, spaces, hyphens, and apostrophes",
			TranslationKey: "validation.person_name",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
