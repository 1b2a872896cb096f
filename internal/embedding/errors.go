package embedding

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when vectors produced for one analysis differ in length.
var ErrDimensionMismatch = errors.New("embedding dimensions do not match")

// Error represents a failed embedding request
type Error struct {
	Model   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding error (%s): %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding error (%s): %s", e.Model, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
