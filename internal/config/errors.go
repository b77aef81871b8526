package config

import "errors"

var (
	ErrParse   = errors.New("config: malformed file")
	ErrInvalid = errors.New("config: invalid value")
	ErrPreset  = errors.New("config: unknown preset")
)
