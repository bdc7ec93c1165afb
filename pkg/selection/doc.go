// Package selection implements the dependent department and doctor selects
// of the appointment form.
//
// DoctorSelect is a two state machine (disabled, enabled) bound to a
// forms.Form. Choosing a known department fills the doctor select with that
// department's doctors in table order, behind a "Select Doctor" placeholder.
// Clearing the department, or choosing one the table does not know, locks the
// doctor select again. Any change clears the chosen doctor and its error.
package selection
