// Package appointments serves the MedCare site: the appointment and contact
// forms, the doctor directory, the theme switch and the testimonial carousel.
//
// The server keeps no per visitor form state. Every Datastar action posts
// the current field values as signals; the form is rebuilt from them, the
// action is applied and the affected fragments are patched back:
//
//	POST /forms/{form}/validate/{field}  blur validation of one field
//	POST /forms/{form}/phone/{field}     phone formatting while typing
//	POST /forms/{form}/department        dependent doctor select
//	POST /forms/{form}/reset             form reset
//	POST /forms/{form}                   submit
//
// A submit follows the shared Sequencer to settlement over one event
// stream. The loading signal is switched on and off by the sequencer, the
// success surface or the error banner is patched in, and a failed submit
// keeps the stream open until the banner expires. Plain form posts and
// JSON clients get the same flow answered as a page or an envelope.
//
// Router adds request ids, request logging, panic recovery, health checks
// and the Prometheus endpoint around the site.
package appointments
