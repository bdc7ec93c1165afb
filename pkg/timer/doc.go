// Package timer provides the time abstraction used by the kit's controllers.
//
// Every controller that waits (submission delay, banner dismissal, search
// debounce, testimonial rotation, screen reader announcements) takes a Clock
// instead of calling the time package directly. Clock.AfterFunc returns a
// Timer handle that fires at most once and can be stopped before it fires.
//
// Two helpers are built on top of it:
//
//	// Debounce search input: only the last keystroke within 300ms runs.
//	d := timer.NewDebouncer(300 * time.Millisecond)
//	d.Trigger(func() { search(term) })
//
//	// Rotate every 5s; Restart after manual navigation.
//	iv := timer.NewInterval(5*time.Second, next)
//	iv.Start()
//	iv.Restart()
//
// ManualClock drives these deterministically in tests:
//
//	clock := timer.NewManualClock(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
//	d := timer.NewDebouncer(300*time.Millisecond, timer.WithClock(clock))
//	clock.Advance(300 * time.Millisecond) // due callbacks run here
package timer
