package env

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/rlch/jgen"
)

// File is the serialized form of a snapshot.
//
//	name: javaee7
//	include: [apis/jaxws.yaml]
//	dependencies:
//	  jaxws: 2.2.10
//	apis:
//	  - kind: jaxws
//	    versions: ">= 2.0, < 3.0"
//	    symbols: {WebService: javax.jws.WebService}
//	types:
//	  - name: javax.xml.ws.Service
//	    members: [javax.xml.ws.Service.Mode]
type File struct {
	Name         string            `yaml:"name,omitempty"`
	Include      []string          `yaml:"include,omitempty"`
	Dependencies map[string]string `yaml:"dependencies,omitempty"`
	APIs         []Definition      `yaml:"apis,omitempty"`
	Types        []*jgen.TypeInfo  `yaml:"types,omitempty"`

	// Path is the absolute path the file was loaded from.
	Path string `yaml:"-"`
}

// BaseName returns the file name without directory and extension.
func (f *File) BaseName() string {
	base := filepath.Base(f.Path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseFile decodes a snapshot file.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &f, nil
}

// Loader handles loading and caching of snapshot files.
type Loader struct {
	// cache stores loaded files by absolute path.
	cache map[string]*File

	// Parser decodes snapshot files. Defaults to ParseFile.
	Parser func(data []byte) (*File, error)
}

// NewLoader creates a new snapshot loader.
func NewLoader() *Loader {
	return &Loader{
		cache:  make(map[string]*File),
		Parser: ParseFile,
	}
}

// Load reads the snapshot at path together with everything it includes.
func Load(path string) (*Snapshot, error) {
	return NewLoader().Load(path)
}

// LoadFile loads a single snapshot file without following includes.
// Relative paths are resolved from the current working directory.
func (l *Loader) LoadFile(path string) (*File, error) {
	absPath, err := l.resolvePath(path, "")
	if err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}

	return l.loadAbsolute(absPath, "")
}

// LoadFileFrom loads a file included by from, resolving path against from's directory.
func (l *Loader) LoadFileFrom(path string, from *File) (*File, error) {
	absPath, err := l.resolvePath(path, from.Path)
	if err != nil {
		return nil, &LoadError{
			Path:         path,
			IncludedFrom: from.Path,
			Cause:        err,
		}
	}

	return l.loadAbsolute(absPath, from.Path)
}

// Load loads the snapshot at path and its transitive includes, detecting cycles.
//
// Files are merged in include order, includes before the including file. A later
// file overrides dependency versions and types of earlier ones, and its API
// definitions take precedence over theirs.
func (l *Loader) Load(path string) (*Snapshot, error) {
	root, err := l.LoadFile(path)
	if err != nil {
		return nil, err
	}

	var order []*File

	// visiting = currently in the DFS stack, visited = fully processed
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	err = l.resolveIncludes(root, visiting, visited, []string{root.Path}, &order)
	if err != nil {
		return nil, err
	}

	return build(root, order)
}

func (l *Loader) resolveIncludes(
	f *File,
	visiting, visited map[string]bool,
	path []string,
	order *[]*File,
) error {
	visiting[f.Path] = true

	for _, inc := range f.Include {
		included, err := l.LoadFileFrom(inc, f)
		if err != nil {
			return err
		}

		if visiting[included.Path] {
			return &CycleError{Path: append(slices.Clone(path), included.Path)}
		}

		if !visited[included.Path] {
			err := l.resolveIncludes(included, visiting, visited, append(slices.Clone(path), included.Path), order)
			if err != nil {
				return err
			}
		}
	}

	visiting[f.Path] = false
	visited[f.Path] = true
	*order = append(*order, f)

	return nil
}

func build(root *File, order []*File) (*Snapshot, error) {
	registry := NewRegistry()

	for i := len(order) - 1; i >= 0; i-- {
		for _, def := range order[i].APIs {
			if err := registry.Register(def); err != nil {
				return nil, &LoadError{Path: order[i].Path, Cause: err}
			}
		}
	}

	name := root.Name
	if name == "" {
		name = root.BaseName()
	}

	opts := []Option{WithName(name)}

	for _, f := range order {
		for _, kind := range slices.Sorted(maps.Keys(f.Dependencies)) {
			opts = append(opts, withSource(f.Path, WithDependency(kind, f.Dependencies[kind])))
		}

		opts = append(opts, WithTypes(f.Types...))
	}

	return NewSnapshot(registry, opts...)
}

// withSource attributes errors of opt to the file it came from.
func withSource(path string, opt Option) Option {
	return func(s *Snapshot) error {
		if err := opt(s); err != nil {
			return &LoadError{Path: path, Cause: err}
		}

		return nil
	}
}

// resolvePath resolves a path to an absolute path.
// If basePath is provided, relative paths are resolved from its directory.
func (l *Loader) resolvePath(path, basePath string) (string, error) { //nolint:funcorder
	if filepath.IsAbs(path) {
		return normalizePath(path)
	}

	var baseDir string
	if basePath != "" {
		baseDir = filepath.Dir(basePath)
	} else {
		var err error

		baseDir, err = os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "failed to get working directory")
		}
	}

	return normalizePath(filepath.Join(baseDir, path))
}

// normalizePath ensures the path exists, trying YAML extensions when it has none.
func normalizePath(path string) (string, error) {
	path = filepath.Clean(path)

	if _, err := os.Stat(path); err == nil {
		return filepath.Abs(path) //nolint:wrapcheck
	}

	if filepath.Ext(path) == "" {
		for _, ext := range []string{".yaml", ".yml"} {
			if _, err := os.Stat(path + ext); err == nil {
				return filepath.Abs(path + ext) //nolint:wrapcheck
			}
		}
	}

	return "", errors.Wrapf(ErrSnapshotNotFound, "%s", path)
}

// loadAbsolute loads a file from an absolute path.
func (l *Loader) loadAbsolute(absPath, includedFrom string) (*File, error) { //nolint:funcorder
	if f, ok := l.cache[absPath]; ok {
		return f, nil
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // G304: snapshot paths come from the user
	if err != nil {
		return nil, &LoadError{
			Path:         absPath,
			IncludedFrom: includedFrom,
			Cause:        err,
		}
	}

	f, err := l.Parser(data)
	if err != nil {
		return nil, &LoadError{
			Path:         absPath,
			IncludedFrom: includedFrom,
			Cause:        errors.Wrapf(ErrParseError, "%v", err),
		}
	}

	f.Path = absPath
	l.cache[absPath] = f

	return f, nil
}

// Clear clears the file cache.
func (l *Loader) Clear() {
	l.cache = make(map[string]*File)
}

// Cached returns all cached files by absolute path.
func (l *Loader) Cached() map[string]*File {
	result := make(map[string]*File, len(l.cache))
	maps.Copy(result, l.cache)

	return result
}
