package eventlog

import "errors"

var (
	ErrInvalidParams = errors.New("invalid generation parameters")
	ErrParamsFile    = errors.New("could not load params file")
)
