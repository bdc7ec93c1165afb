// Package carousel rotates the homepage testimonials.
//
// A Rotator advances every DefaultInterval once started. Next, Prev and GoTo
// wrap around and restart the period; Pause and Resume follow the pointer
// entering and leaving the slider.
package carousel
