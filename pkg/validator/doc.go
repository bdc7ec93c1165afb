// Package validator provides small, composable validation rules used by the
// form engine.
//
// A Rule pairs a boolean Check function with error metadata. Messages in the
// metadata are generic; the TranslationKey and TranslationValues fields let a
// caller render its own, field-specific text (the forms package does this
// with the field label).
//
// First evaluates rules in order and stops at the first failure:
//
//	verr := validator.First(
//	    validator.RequiredString("email", email),
//	    validator.ValidEmail("email", email),
//	)
//	if verr != nil {
//	    // verr.TranslationKey identifies the failed rule
//	}
//
// ValidationErrors collects failures across fields and implements error; use
// ExtractValidationErrors or IsValidationError to inspect wrapped errors.
//
// Date rules work on calendar days. ParseDate reads the YYYY-MM-DD format of
// HTML date inputs, and DateOnly truncates a time to midnight.
//
// The package has no global state and all rules are safe for concurrent use.
package validator
