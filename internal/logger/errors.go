package logger

import "errors"

var (
	ErrLevel  = errors.New("logger: unknown level")
	ErrFormat = errors.New("logger: unknown format")
)
