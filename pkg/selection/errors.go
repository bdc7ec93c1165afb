package selection

import "errors"

var (
	ErrMissingDependency = errors.New("selection: form and department table are required")
	ErrSelectDisabled    = errors.New("selection: choose a department first")
	ErrNotOffered        = errors.New("selection: doctor not offered by department")
)
