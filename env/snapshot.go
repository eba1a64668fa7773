package env

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rlch/jgen"
)

const closureCacheSize = 1024

// Snapshot is an immutable view of a target project: the API versions it depends on
// and the types it can resolve. It implements jgen.Environment and is safe for
// concurrent reads.
type Snapshot struct {
	name     string
	registry *Registry
	versions map[string]*semver.Version
	types    map[string]*jgen.TypeInfo
	closure  *lru.Cache[string, []string]
}

var _ jgen.Environment = (*Snapshot)(nil)

// Option configures a Snapshot under construction.
type Option func(*Snapshot) error

// WithName names the snapshot.
func WithName(name string) Option {
	return func(s *Snapshot) error {
		s.name = name

		return nil
	}
}

// WithDependency declares that the project depends on version of an API kind.
func WithDependency(kind, version string) Option {
	return func(s *Snapshot) error {
		v, err := semver.NewVersion(version)
		if err != nil {
			return errors.Wrapf(ErrInvalidVersion, "%s %q: %v", kind, version, err)
		}

		s.versions[kind] = v

		return nil
	}
}

// WithTypes adds types to the catalog. A later type with the same name replaces an
// earlier one.
func WithTypes(types ...*jgen.TypeInfo) Option {
	return func(s *Snapshot) error {
		for _, t := range types {
			if t != nil && t.Name != "" {
				s.types[t.Name] = t
			}
		}

		return nil
	}
}

// NewSnapshot creates a snapshot resolving API kinds through registry.
// A nil registry supports no API kinds.
func NewSnapshot(registry *Registry, opts ...Option) (*Snapshot, error) {
	if registry == nil {
		registry = NewRegistry()
	}

	closure, err := lru.New[string, []string](closureCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating supertype cache")
	}

	s := &Snapshot{
		registry: registry,
		versions: make(map[string]*semver.Version),
		types:    make(map[string]*jgen.TypeInfo),
		closure:  closure,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Name returns the snapshot name.
func (s *Snapshot) Name() string {
	return s.name
}

// Registry returns the API registry.
func (s *Snapshot) Registry() *Registry {
	return s.registry
}

// Type implements jgen.Environment.
func (s *Snapshot) Type(fqn string) (*jgen.TypeInfo, bool) {
	t, ok := s.types[fqn]

	return t, ok
}

// Types returns the names of all catalogued types, sorted.
func (s *Snapshot) Types() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// API implements jgen.Environment. A kind is supported when the project declares a
// dependency on it and a registered definition covers that version.
func (s *Snapshot) API(kind string) (jgen.API, bool) { //nolint:ireturn
	v, ok := s.versions[kind]
	if !ok {
		return nil, false
	}

	def, ok := s.registry.Resolve(kind, v)
	if !ok {
		return nil, false
	}

	return &apiVersion{def: def, version: v}, true
}

// Dependency is a declared API dependency.
type Dependency struct {
	Kind    string
	Version *semver.Version
}

// Dependencies returns the declared dependencies sorted by kind.
func (s *Snapshot) Dependencies() []Dependency {
	deps := make([]Dependency, 0, len(s.versions))
	for kind, v := range s.versions {
		deps = append(deps, Dependency{Kind: kind, Version: v})
	}

	slices.SortFunc(deps, func(a, b Dependency) int {
		return strings.Compare(a.Kind, b.Kind)
	})

	return deps
}

// Supertypes returns the transitive supertypes of fqn in breadth-first order,
// without duplicates. Types missing from the catalog end the walk on their branch.
func (s *Snapshot) Supertypes(fqn string) []string {
	if cached, ok := s.closure.Get(fqn); ok {
		return slices.Clone(cached)
	}

	var result []string

	seen := map[string]bool{fqn: true}
	queue := []string{fqn}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		info, ok := s.types[t]
		if !ok {
			continue
		}

		for _, super := range info.Supertypes {
			if seen[super] {
				continue
			}

			seen[super] = true
			result = append(result, super)
			queue = append(queue, super)
		}
	}

	s.closure.Add(fqn, result)

	return slices.Clone(result)
}

// IsSubtype reports whether fqn is super or one of its subtypes.
func (s *Snapshot) IsSubtype(fqn, super string) bool {
	return fqn == super || slices.Contains(s.Supertypes(fqn), super)
}

type apiVersion struct {
	def     *Definition
	version *semver.Version
}

func (a *apiVersion) Kind() string {
	return a.def.Kind
}

func (a *apiVersion) Version() *semver.Version {
	return a.version
}

func (a *apiVersion) Symbol(name string) (string, bool) {
	s, ok := a.def.Symbols[name]

	return s, ok
}

func (a *apiVersion) Supports(feature string) bool {
	return slices.Contains(a.def.Features, feature)
}
