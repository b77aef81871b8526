package stage

import "errors"

var (
	ErrClosed     = errors.New("stage: closed")
	ErrNotMounted = errors.New("stage: no level mounted")
)
