package scene

import "errors"

var ErrUnknownKind = errors.New("scene: unknown kind")
