package model

import (
	"errors"
	"fmt"
)

// Capacity conditions. They are always wrapped in a CapacityError.
var (
	ErrDepthLimitExceeded = errors.New("nesting depth limit exceeded")
	ErrTooManyImages      = errors.New("too many images")
	ErrTooManyProperties  = errors.New("too many properties")
)

// CapacityError rejects an operation that would grow a collection or the
// tree past its limit.
type CapacityError struct {
	Err   error
	Limit int
	Got   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%v: %d exceeds maximum of %d", e.Err, e.Got, e.Limit)
}

func (e *CapacityError) Unwrap() error { return e.Err }

// ValidationError rejects a single input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
