// Package submission sequences form submissions.
//
// A Sequencer moves through idle, submitting, then succeeded or failed, and
// back to idle. Run checks and claims the idle state atomically, so a
// process that shares one Sequencer between all its forms never has two
// submissions in flight; a second Run fails with ErrInFlight and has no
// effect. Loading is switched on before the Submitter runs and off after
// settlement, whatever the outcome.
//
// Controller layers the form flow on top: whole form validation with the
// correction prompt, the success surface and announcement, the reset, and
// the auto-dismissing error Banner. SimulatedSubmitter answers after a fixed
// delay and is what the service uses in place of a booking backend.
package submission
