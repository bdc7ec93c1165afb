package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medcare-web/medcare/pkg/sanitizer"
)

func TestFormatPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"one digit", "5", "5"},
		{"two digits", "55", "55"},
		{"area code only", "555", "(555) "},
		{"area code and partial exchange", "55512", "(555) 12"},
		{"exchange complete", "555123", "(555) 123-"},
		{"partial line", "5551234", "(555) 123-4"},
		{"nine digits", "555123456", "(555) 123-456"},
		{"complete", "5551234567", "(555) 123-4567"},
		{"extra digits are dropped", "555123456789", "(555) 123-4567"},
		{"strips punctuation", "555.123.4567", "(555) 123-4567"},
		{"already formatted", "(555) 123-4567", "(555) 123-4567"},
		{"letters are dropped", "abc555def1", "(555) 1"},
		{"backspace over dash", "(555) 123", "(555) 123-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.FormatPhone(tt.input))
		})
	}
}

func TestExtractPhoneDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5551234567", sanitizer.ExtractPhoneDigits("+(555) 123-4567"))
	assert.Equal(t, "", sanitizer.ExtractPhoneDigits("call me"))
}

func TestMaskPhone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "******4567", sanitizer.MaskPhone("(555) 123-4567"))
	assert.Equal(t, "***", sanitizer.MaskPhone("123"))
}
