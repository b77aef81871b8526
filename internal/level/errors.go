package level

import "errors"

var (
	ErrCatalog = errors.New("level: malformed catalog")
	ErrUnknown = errors.New("level: unknown id")
)
