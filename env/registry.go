package env

import (
	"slices"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Definition describes one version range of an API kind: the spelling of its
// symbols and the features it provides.
type Definition struct {
	// Kind identifies the API (e.g., "jaxws").
	Kind string `yaml:"kind"`

	// Versions is a semver constraint (e.g., ">= 2.0, < 3.0"). Empty matches any version.
	Versions string `yaml:"versions,omitempty"`

	// Symbols maps logical symbol names to their spelling in this range.
	Symbols map[string]string `yaml:"symbols,omitempty"`

	// Features lists capabilities available in this range.
	Features []string `yaml:"features,omitempty"`

	constraint *semver.Constraints
}

// Matches reports whether v lies in the definition's version range.
func (d *Definition) Matches(v *semver.Version) bool {
	if d.constraint == nil {
		return true
	}

	return d.constraint.Check(v)
}

// Registry holds API definitions per kind, in declaration order.
// It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string][]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string][]*Definition)}
}

// Register appends a definition. Earlier definitions take precedence.
func (r *Registry) Register(def Definition) error {
	if def.Kind == "" {
		return ErrMissingKind
	}

	if def.Versions != "" {
		c, err := semver.NewConstraint(def.Versions)
		if err != nil {
			return errors.Wrapf(ErrInvalidConstraint, "%s %q: %v", def.Kind, def.Versions, err)
		}

		def.constraint = c
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.defs[def.Kind] = append(r.defs[def.Kind], &def)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Resolve returns the first definition of kind whose range contains v.
func (r *Registry) Resolve(kind string, v *semver.Version) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.defs[kind] {
		if def.Matches(v) {
			return def, true
		}
	}

	return nil, false
}

// Kinds returns the registered API kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.defs))
	for k := range r.defs {
		kinds = append(kinds, k)
	}

	slices.Sort(kinds)

	return kinds
}

// Definitions returns the definitions of kind in precedence order.
func (r *Registry) Definitions(kind string) []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.defs[kind])
}
