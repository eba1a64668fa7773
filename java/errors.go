package java

import "github.com/cockroachdb/errors"

// ErrMissingType is returned when a field, parameter or method lacks a mandatory type.
var ErrMissingType = errors.New("type not set")

// ErrUnknownModifier is returned when parsing an unknown modifier keyword.
var ErrUnknownModifier = errors.New("unknown modifier")

// ErrUnknownKind is returned when parsing an unknown type kind.
var ErrUnknownKind = errors.New("unknown type kind")
