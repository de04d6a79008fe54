package field

import "errors"

var (
	// ErrInvalidState is returned for operations on a nil or destroyed Field
	ErrInvalidState = errors.New("field: invalid state")
	// ErrInvalidArgument is returned for out-of-range construction or input values
	ErrInvalidArgument = errors.New("field: invalid argument")
)
