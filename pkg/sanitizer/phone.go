package sanitizer

import (
	"regexp"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

// PhoneDigits is the number of digits in a complete NANP phone number.
const PhoneDigits = 10

// ExtractPhoneDigits strips everything except ASCII digits.
func ExtractPhoneDigits(phone string) string {
	return nonDigitRegex.ReplaceAllString(phone, "")
}

// FormatPhone formats a partially typed US phone number as the user types.
//
//	"55"           -> "55"
//	"555"          -> "(555) "
//	"55512"        -> "(555) 12"
//	"555123"       -> "(555) 123-"
//	"5551234567"   -> "(555) 123-4567"
//	"555123456789" -> "(555) 123-4567"
//
// The output depends only on the digits of the input, so applying FormatPhone
// to its own output returns the same string.
func FormatPhone(phone string) string {
	digits := ExtractPhoneDigits(phone)

	switch n := len(digits); {
	case n < 3:
		return digits
	case n < 6:
		return "(" + digits[:3] + ") " + digits[3:]
	case n < PhoneDigits:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:PhoneDigits]
	}
}

// MaskPhone keeps the last four digits visible, used when phone numbers end up in logs.
func MaskPhone(phone string) string {
	digits := ExtractPhoneDigits(phone)
	if len(digits) < 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
