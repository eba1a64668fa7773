package jgen

import "github.com/Masterminds/semver/v3"

// ObjectType is the universal root type. It never contributes member types to a scope.
const ObjectType = "java.lang.Object"

// Environment is a read-only snapshot of the target project: which types are resolvable
// and which versions of the APIs it depends on are available.
//
// Implementations must not change while a generation run holds them.
type Environment interface {
	// Type returns what the environment knows about a fully qualified type name.
	Type(fqn string) (*TypeInfo, bool)

	// API returns the versioned capability for an API kind, or false when the
	// environment does not support that kind.
	API(kind string) (API, bool)
}

// TypeInfo describes a type known to an environment.
type TypeInfo struct {
	// Name is the fully qualified name (e.g., "java.util.Map.Entry").
	Name string `yaml:"name"`

	// Package is the declaring package. Empty means it is derived from Name.
	Package string `yaml:"package,omitempty"`

	// Supertypes are the direct supertypes (superclass first, then interfaces),
	// fully qualified and without type arguments.
	Supertypes []string `yaml:"supertypes,omitempty"`

	// MemberTypes are the fully qualified names of the declared nested types.
	MemberTypes []string `yaml:"members,omitempty"`
}

// API is one version of a framework API, as available in an environment.
type API interface {
	// Kind returns the API kind identifier (e.g., "jaxws").
	Kind() string

	// Version returns the version the environment depends on.
	Version() *semver.Version

	// Symbol returns the version-specific spelling of a logical symbol.
	Symbol(name string) (string, bool)

	// Supports reports whether this version provides a feature.
	Supports(feature string) bool
}
