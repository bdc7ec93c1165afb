// Package statemachine implements a small thread-safe finite state machine.
//
// States and events are plain strings. Transitions may carry guards, which
// decide whether the transition applies, and actions, which run before the
// state changes and can veto it by returning an error. Listeners observe
// committed transitions after the lock is released.
//
//	const (
//	    Disabled statemachine.State = "disabled"
//	    Enabled  statemachine.State = "enabled"
//	    Choose   statemachine.Event = "choose"
//	)
//
//	m, err := statemachine.New(Disabled,
//	    statemachine.WithTransition(Disabled, Enabled, Choose,
//	        statemachine.WithGuard(knownDepartment)),
//	)
//	err = m.Fire(ctx, Choose, "cardiology")
//
// Fire returns *ErrNoTransitionAvailable when nothing is registered for the
// current state and event, and *ErrTransitionRejected when guards blocked
// every candidate. Because the check and the state change happen under one
// lock, a transition out of a state can be used as an atomic test-and-set.
package statemachine
