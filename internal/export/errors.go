package export

import "errors"

var (
	ErrEmpty     = errors.New("export: nothing to write")
	ErrRecording = errors.New("export: recorder is full")
)
