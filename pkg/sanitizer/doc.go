// Package sanitizer provides pure string transforms applied to form input
// before it is validated or echoed back.
//
// FormatPhone is the keystroke formatter for telephone inputs: it keeps the
// digits and re-inserts "(XXX) XXX-XXXX" punctuation progressively. It is
// idempotent, so it can run on every input event without drifting.
//
// StripHTML uses a bluemonday strict policy to remove markup from free text
// such as the appointment reason before it is shown in a confirmation.
//
// Transforms compose with Apply and Compose:
//
//	clean := sanitizer.Compose(sanitizer.StripHTML, sanitizer.NormalizeWhitespace)
//	reason := clean(input)
package sanitizer
