package forms

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidForm  = errors.New("forms: invalid form definition")
	ErrUnknownField = errors.New("forms: unknown field")
)

func unknownField(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownField, name)
}
