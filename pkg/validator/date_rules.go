package validator

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of HTML date inputs.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidDate validates that value is a YYYY-MM-DD calendar date.
func ValidDate(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(DateLayout, value)
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid date",
			TranslationKey: "validation.date",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// NotAfterDate compares calendar days only; the limit day itself passes.
func NotAfterDate(field string, value, limit time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !DateOnly(value).After(DateOnly(limit))
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("date must not be after %s", limit.Format(DateLayout)),
			TranslationKey: "validation.date_not_after",
			TranslationValues: map[string]any{
				"field": field,
				"limit": limit.Format(DateLayout),
			},
		},
	}
}

// NotBeforeDate compares calendar days only; the limit day itself passes.
func NotBeforeDate(field string, value, limit time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !DateOnly(value).Before(DateOnly(limit))
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("date must not be before %s", limit.Format(DateLayout)),
			TranslationKey: "validation.date_not_before",
			TranslationValues: map[string]any{
				"field": field,
				"limit": limit.Format(DateLayout),
			},
		},
	}
}

// MaxAgeYears validates the difference in calendar years between birthdate and today.
// Birthdays later in the year are not taken into account.
func MaxAgeYears(field string, birthdate, today time.Time, maxAge int) Rule {
	return Rule{
		Check: func() bool {
			return today.Year()-birthdate.Year() <= maxAge
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("maximum age of %d years exceeded", maxAge),
			TranslationKey: "validation.max_age",
			TranslationValues: map[string]any{
				"field":   field,
				"max_age": maxAge,
			},
		},
	}
}
