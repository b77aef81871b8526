package clock

import "errors"

// ErrInterval indicates a non-positive frame interval.
var ErrInterval = errors.New("clock: frame interval must be positive")
