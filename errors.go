package jgen

import "github.com/cockroachdb/errors"

// Configuration errors.
var (
	ErrConfigNotFound      = errors.New("config file not found")
	ErrMissingElementName  = errors.New("element name not set")
	ErrMultiplePublicTypes = errors.New("compilation unit declares more than one public type")
)

// Resolution errors.
var (
	ErrNoEnvironment  = errors.New("no environment bound to context")
	ErrUnsupportedAPI = errors.New("api not supported by environment")
)

// Reference errors.
var (
	ErrInvalidReference    = errors.New("invalid type reference")
	ErrUnexpectedCharacter = errors.New("unexpected character")
)
