package libgesturego

import "errors"

var (
	ErrUnknownFamily  = errors.New("unknown detection family")
	ErrUnknownChannel = errors.New("unknown sensor channel")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
