package api

import "github.com/cockroachdb/errors"

// Sentinel errors for API function evaluation.
var (
	// ErrUnknownSymbol is returned when an API version does not define a symbol.
	ErrUnknownSymbol = errors.New("api: unknown symbol")

	// ErrInvalidConstraint is returned for a malformed version constraint.
	ErrInvalidConstraint = errors.New("api: invalid version constraint")

	// ErrInvalidCondition is returned when a condition fails to compile.
	ErrInvalidCondition = errors.New("api: invalid condition")

	// ErrConditionNotBool is returned when a condition does not yield a boolean.
	ErrConditionNotBool = errors.New("api: condition did not return a boolean")
)
