package submission

import "errors"

var (
	// ErrInFlight rejects a submission while another one has not settled.
	ErrInFlight          = errors.New("submission: another submission is in progress")
	ErrSubmissionFailed  = errors.New("submission: submit failed")
	ErrSimulatedFailure  = errors.New("submission: simulated failure")
	ErrMissingDependency = errors.New("submission: missing dependency")
)
