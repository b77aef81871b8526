package analysis

import "errors"

var (
	ErrDuration = errors.New("analysis: duration must exceed one step")
	ErrField    = errors.New("analysis: unknown parameter")
)
