package directory

import "errors"

var (
	ErrInvalidCatalog = errors.New("directory: invalid catalog")
	ErrUnknownDoctor  = errors.New("directory: unknown doctor")
)
