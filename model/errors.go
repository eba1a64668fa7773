package model

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for descriptor operations.
var (
	// ErrParse is returned when a descriptor fails to decode.
	ErrParse = errors.New("model: parse error")

	// ErrInvalid is returned when a descriptor decodes but describes invalid declarations.
	ErrInvalid = errors.New("model: invalid descriptor")
)

// ValidationError locates an invalid element inside a descriptor.
type ValidationError struct {
	// Where is a path such as "units[0].types[1].fields[2]".
	Where string
	// Cause is the underlying error.
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Where, e.Cause)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalid, e.Cause}
}
