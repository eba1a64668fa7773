package api_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
)

func TestWhen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		condition string
		version   string
		want      bool
	}{
		{"empty", "", "", true},
		{"since true", `since("jaxws", ">= 3.0")`, "3.0.0", true},
		{"since false", `since("jaxws", ">= 3.0")`, "2.2.0", false},
		{"version equality", `version("jaxws") == "2.2.0"`, "2.2.0", true},
		{"supports", `supports("jaxws", "async")`, "3.0.0", true},
		{"symbol", `symbol("jaxws", "WebService") startsWith "jakarta."`, "3.0.0", true},
		{"has missing kind", `has("jaxrs")`, "3.0.0", false},
		{"has without dependency", `has("jaxws")`, "", false},
		{"guarded lookup", `has("jaxws") && since("jaxws", "^2")`, "", false},
		{"short circuit skips lookup", `true || since("jaxws", ">= 3.0")`, "", true},
		{"hasType", `hasType("javax.xml.ws.Service") && !hasType("x.Y")`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := api.When(tt.condition).Eval(contextFor(t, tt.version))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWhen_ResolutionErrorsPropagate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		condition string
		ctx       func(t *testing.T) *jgen.Context
		target    error
	}{
		{
			name:      "unsupported kind",
			condition: `since("jaxws", ">= 3.0") || true`,
			ctx:       func(t *testing.T) *jgen.Context { t.Helper(); return contextFor(t, "") },
			target:    jgen.ErrUnsupportedAPI,
		},
		{
			name:      "unsupported kind in negation",
			condition: `!since("jaxws", ">= 3.0") && false`,
			ctx:       func(t *testing.T) *jgen.Context { t.Helper(); return contextFor(t, "") },
			target:    jgen.ErrUnsupportedAPI,
		},
		{
			name:      "no environment",
			condition: `hasType("a.B")`,
			ctx:       func(*testing.T) *jgen.Context { return jgen.NewContext() },
			target:    jgen.ErrNoEnvironment,
		},
		{
			name:      "unknown symbol",
			condition: `symbol("jaxws", "Nope") == ""`,
			ctx:       func(t *testing.T) *jgen.Context { t.Helper(); return contextFor(t, "2.0.0") },
			target:    api.ErrUnknownSymbol,
		},
		{
			name:      "bad constraint",
			condition: `since("jaxws", "bogus")`,
			ctx:       func(t *testing.T) *jgen.Context { t.Helper(); return contextFor(t, "2.0.0") },
			target:    api.ErrInvalidConstraint,
		},
		{
			name:      "does not compile",
			condition: `since(`,
			ctx:       func(t *testing.T) *jgen.Context { t.Helper(); return contextFor(t, "2.0.0") },
			target:    api.ErrInvalidCondition,
		},
		{
			name:      "not boolean",
			condition: `version("jaxws")`,
			ctx:       func(t *testing.T) *jgen.Context { t.Helper(); return contextFor(t, "2.0.0") },
			target:    api.ErrInvalidCondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := api.When(tt.condition).Eval(tt.ctx(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestCheckCondition(t *testing.T) {
	t.Parallel()

	require.NoError(t, api.CheckCondition(""))
	require.NoError(t, api.CheckCondition(`since("jaxws", "^2")`))
	assert.True(t, errors.Is(api.CheckCondition(`1 +`), api.ErrInvalidCondition))
}
