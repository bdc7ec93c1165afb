// Package forms is the validation engine behind the appointment and contact
// forms.
//
// A Form is an ordered set of Field values. Each field declares a Kind
// (text, email, tel, date, ...), whether it is required, and optionally a
// Role that adds domain rules (person names, date of birth, appointment
// window, free text length). The Engine evaluates a field in three stages
// and reports the first failure only:
//
//  1. required: an empty trimmed value fails, an empty optional value passes;
//  2. kind: email shape, "(XXX) XXX-XXXX" phone shape, date bounds by role;
//  3. role: name length and characters, free text length.
//
// ValidateField is a pure function of the field snapshot and the engine's
// clock. Check and ValidateForm also write the result back to the form's
// display state (Invalid and Error), which is what the rendering layer shows.
// ValidateForm always evaluates every field.
//
//	engine := forms.New()
//	form := forms.ContactForm()
//	_, _ = form.Input(forms.FieldPhone, "5551234567") // stored as "(555) 123-4567"
//	if !engine.ValidateForm(form) {
//	    focus, _ := form.FirstInvalid()
//	}
//
// Messages are rendered from templates keyed by the failed rule; see
// DefaultMessages and WithMessages.
package forms
