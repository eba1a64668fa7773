package env_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/env"
)

func TestSnapshot_API(t *testing.T) {
	t.Parallel()

	registry := jaxwsRegistry(t)

	legacy, err := env.NewSnapshot(registry, env.WithName("legacy"), env.WithDependency("jaxws", "2.2.10"))
	require.NoError(t, err)

	modern, err := env.NewSnapshot(registry, env.WithDependency("jaxws", "3.1.0"))
	require.NoError(t, err)

	none, err := env.NewSnapshot(registry)
	require.NoError(t, err)

	api, ok := legacy.API("jaxws")
	require.True(t, ok)
	assert.Equal(t, "jaxws", api.Kind())
	assert.Equal(t, "2.2.10", api.Version().String())
	assert.True(t, api.Supports("addressing"))
	assert.False(t, api.Supports("async"))

	sym, ok := api.Symbol("WebService")
	assert.True(t, ok)
	assert.Equal(t, "javax.jws.WebService", sym)

	_, ok = api.Symbol("Missing")
	assert.False(t, ok)

	api, ok = modern.API("jaxws")
	require.True(t, ok)
	assert.True(t, api.Supports("async"))

	_, ok = none.API("jaxws")
	assert.False(t, ok)

	assert.Equal(t, "legacy", legacy.Name())
	require.Len(t, legacy.Dependencies(), 1)
	assert.Equal(t, "jaxws", legacy.Dependencies()[0].Kind)
}

func TestSnapshot_UncoveredVersion(t *testing.T) {
	t.Parallel()

	r := env.NewRegistry()
	r.MustRegister(env.Definition{Kind: "jaxrs", Versions: "^2"})

	s, err := env.NewSnapshot(r, env.WithDependency("jaxrs", "1.1.0"))
	require.NoError(t, err)

	_, ok := s.API("jaxrs")
	assert.False(t, ok)
}

func TestSnapshot_InvalidVersion(t *testing.T) {
	t.Parallel()

	_, err := env.NewSnapshot(nil, env.WithDependency("jaxws", "latest"))
	assert.True(t, errors.Is(err, env.ErrInvalidVersion))
}

func TestSnapshot_Supertypes(t *testing.T) {
	t.Parallel()

	s, err := env.NewSnapshot(nil, env.WithTypes(
		&jgen.TypeInfo{Name: "a.C", Supertypes: []string{"a.B", "a.I"}},
		&jgen.TypeInfo{Name: "a.B", Supertypes: []string{"a.A", "a.I"}},
		&jgen.TypeInfo{Name: "a.A", Supertypes: []string{jgen.ObjectType}},
		&jgen.TypeInfo{Name: "a.I"},
		nil,
	))
	require.NoError(t, err)

	want := []string{"a.B", "a.I", "a.A", jgen.ObjectType}
	assert.Equal(t, want, s.Supertypes("a.C"))

	// Served from the cache; callers cannot corrupt it.
	got := s.Supertypes("a.C")
	got[0] = "mutated"
	assert.Equal(t, want, s.Supertypes("a.C"))

	assert.True(t, s.IsSubtype("a.C", "a.A"))
	assert.True(t, s.IsSubtype("a.I", "a.I"))
	assert.False(t, s.IsSubtype("a.A", "a.C"))
	assert.Empty(t, s.Supertypes("unknown.T"))

	info, ok := s.Type("a.C")
	require.True(t, ok)
	assert.Equal(t, "a.C", info.Name)
	assert.Equal(t, []string{"a.A", "a.B", "a.C", "a.I"}, s.Types())
}
