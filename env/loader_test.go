package env_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen/env"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Includes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "apis", "jaxws.yaml"), `
apis:
  - kind: jaxws
    versions: "< 3.0"
    symbols:
      WebService: javax.jws.WebService
types:
  - name: javax.xml.ws.Service
    members: [javax.xml.ws.Service.Mode]
`)
	writeFile(t, filepath.Join(dir, "apis", "override.yaml"), `
include: [jaxws]
apis:
  - kind: jaxws
    versions: ">= 2.2"
    symbols:
      WebService: override.WebService
`)
	writeFile(t, filepath.Join(dir, "project.yaml"), `
name: project
include:
  - apis/jaxws.yaml
  - apis/override.yaml
dependencies:
  jaxws: 2.2.10
types:
  - name: javax.xml.ws.Service
    supertypes: [java.lang.Object]
`)

	s, err := env.Load(filepath.Join(dir, "project.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "project", s.Name())

	api, ok := s.API("jaxws")
	require.True(t, ok)

	sym, _ := api.Symbol("WebService")
	assert.Equal(t, "override.WebService", sym)

	// The including file replaces the included type entry.
	info, ok := s.Type("javax.xml.ws.Service")
	require.True(t, ok)
	assert.Equal(t, []string{"java.lang.Object"}, info.Supertypes)
	assert.Empty(t, info.MemberTypes)
}

func TestLoad_DefaultName(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "javaee7.yaml")
	writeFile(t, path, "dependencies: {jaxws: 2.2.0}\n")

	s, err := env.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "javaee7", s.Name())
}

func TestLoad_Cycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "include: [b.yaml]\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: [a.yaml]\n")

	_, err := env.Load(filepath.Join(dir, "a.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, env.ErrCyclicInclude))

	var cycle *env.CycleError
	require.True(t, errors.As(err, &cycle))
	require.Len(t, cycle.Path, 3)
	assert.Equal(t, cycle.Path[0], cycle.Path[2])
}

func TestLoad_DiamondIsNotACycle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.yaml"), "dependencies: {jaxws: 2.0.0}\n")
	writeFile(t, filepath.Join(dir, "left.yaml"), "include: [base.yaml]\n")
	writeFile(t, filepath.Join(dir, "right.yaml"), "include: [base.yaml]\n")
	writeFile(t, filepath.Join(dir, "root.yaml"), "include: [left.yaml, right.yaml]\n")

	s, err := env.Load(filepath.Join(dir, "root.yaml"))
	require.NoError(t, err)
	require.Len(t, s.Dependencies(), 1)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "missing-include.yaml"), "include: [nowhere.yaml]\n")
	writeFile(t, filepath.Join(dir, "broken.yaml"), "include: [\n")
	writeFile(t, filepath.Join(dir, "bad-version.yaml"), "dependencies: {jaxws: latest}\n")
	writeFile(t, filepath.Join(dir, "bad-range.yaml"), "apis: [{kind: jaxws, versions: 'bogus'}]\n")

	tests := []struct {
		file   string
		target error
	}{
		{"nope.yaml", env.ErrSnapshotNotFound},
		{"missing-include.yaml", env.ErrSnapshotNotFound},
		{"broken.yaml", env.ErrParseError},
		{"bad-version.yaml", env.ErrInvalidVersion},
		{"bad-range.yaml", env.ErrInvalidConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			_, err := env.Load(filepath.Join(dir, tt.file))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)

			var loadErr *env.LoadError
			assert.True(t, errors.As(err, &loadErr))
		})
	}
}

func TestLoader_Cache(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "s.yaml")
	writeFile(t, path, "name: s\n")

	l := env.NewLoader()

	f1, err := l.LoadFile(path)
	require.NoError(t, err)

	f2, err := l.LoadFile(path)
	require.NoError(t, err)
	assert.Same(t, f1, f2)
	assert.Len(t, l.Cached(), 1)

	l.Clear()
	assert.Empty(t, l.Cached())
}
