package java_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen/api"
	"github.com/rlch/jgen/env"
)

func apiSymbol(kind, name string) *api.Func[string] {
	return api.Symbol(kind, name)
}

// jaxws returns a snapshot depending on the given JAX-WS version.
func jaxws(t *testing.T, version string) *env.Snapshot {
	t.Helper()

	r := env.NewRegistry()
	r.MustRegister(env.Definition{
		Kind:     "jaxws",
		Versions: "< 3.0",
		Symbols:  map[string]string{"WebService": "javax.jws.WebService"},
	})
	r.MustRegister(env.Definition{
		Kind:     "jaxws",
		Versions: ">= 3.0",
		Symbols:  map[string]string{"WebService": "jakarta.jws.WebService"},
	})

	s, err := env.NewSnapshot(r, env.WithDependency("jaxws", version))
	require.NoError(t, err)

	return s
}
