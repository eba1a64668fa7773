// Package env provides environment snapshots: which API versions a target project
// depends on and which types it can resolve.
package env

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for environment operations.
var (
	// ErrSnapshotNotFound is returned when a snapshot file cannot be found.
	ErrSnapshotNotFound = errors.New("env: snapshot not found")

	// ErrCyclicInclude is returned when a cycle is detected in the include graph.
	ErrCyclicInclude = errors.New("env: cyclic include detected")

	// ErrParseError is returned when a snapshot file fails to parse.
	ErrParseError = errors.New("env: parse error")

	// ErrInvalidVersion is returned for a dependency version that is not semver.
	ErrInvalidVersion = errors.New("env: invalid version")

	// ErrInvalidConstraint is returned for an API definition with a bad version range.
	ErrInvalidConstraint = errors.New("env: invalid version constraint")

	// ErrMissingKind is returned for an API definition without a kind.
	ErrMissingKind = errors.New("env: api definition has no kind")
)

// CycleError provides details about a cyclic include.
type CycleError struct {
	// Path shows the cycle: [A, B, A] means A includes B, B includes A.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicInclude, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicInclude
}

// LoadError provides details about a failed snapshot load.
type LoadError struct {
	// Path is the filesystem path that failed to load.
	Path string
	// IncludedFrom is the file that included this path (empty for the root).
	IncludedFrom string
	// Cause is the underlying error.
	Cause error
}

func (e *LoadError) Error() string {
	if e.IncludedFrom != "" {
		return fmt.Sprintf("failed to load %q (included from %s): %v", e.Path, e.IncludedFrom, e.Cause)
	}

	return fmt.Sprintf("failed to load %q: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
