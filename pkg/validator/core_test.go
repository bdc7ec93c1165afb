package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Parallel()

	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with multiple errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		errs.Add(validator.ValidationError{Field: "phone", Message: "is invalid"})

		assert.Equal(t, "validation failed: email: is required; phone: is invalid", errs.Error())
	})
}

func TestValidationErrors_Accessors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{
		{Field: "firstName", Message: "too short"},
		{Field: "email", Message: "invalid"},
		{Field: "firstName", Message: "bad characters"},
	}

	assert.Equal(t, []string{"firstName", "email"}, errs.Fields())
	assert.Equal(t, map[string][]string{
		"firstName": {"too short", "bad characters"},
		"email":     {"invalid"},
	}, errs.Map())
	assert.Nil(t, validator.ValidationErrors{}.Map())
}

func TestFirst(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when every rule passes", func(t *testing.T) {
		assert.Nil(t, validator.First(validator.RequiredString("name", "Jane")))
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		evaluated := false
		verr := validator.First(
			validator.RequiredString("name", "Jane"),
			validator.MinLenString("name", "J", 2),
			validator.Rule{Check: func() bool { evaluated = true; return false }},
		)
		require.NotNil(t, verr)
		assert.Equal(t, "validation.min_length", verr.TranslationKey)
		assert.False(t, evaluated)
	})

	t.Run("returned error is a copy of the rule error", func(t *testing.T) {
		rule := validator.RequiredString("name", "")
		verr := validator.First(rule)
		require.NotNil(t, verr)
		verr.Message = "changed"
		assert.Equal(t, "field is required", rule.Error.Message)
	})
}

func TestExtractValidationErrors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{{Field: "email", Message: "invalid"}}
	wrapped := fmt.Errorf("submit: %w", errs)

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("plain")))
	assert.Equal(t, errs, validator.ExtractValidationErrors(wrapped))
	assert.True(t, validator.IsValidationError(wrapped))
	assert.False(t, validator.IsValidationError(errors.New("plain")))
	assert.False(t, validator.IsValidationError(nil))
}
