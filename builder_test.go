package jgen_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/jgen"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	ctx := jgen.NewContext(jgen.WithLineDelimiter("\r\n"))
	b := jgen.NewBuilder(ctx)

	b.Append("int").Space().Append("x").EqualSign().Append("1").Semicolon().NL().
		Append("f").ParenOpen().Join([]string{"a", "b"}, ", ").ParenClose().
		Dot().Append("g").Comma().BlockStart().BlockEnd().AppendRune('!')

	assert.Equal(t, "int x = 1;\r\nf(a, b).g, {}!", b.String())
	assert.Equal(t, len(b.String()), b.Len())
	assert.Same(t, ctx, b.Context())
}

func TestGenerator_Sequence(t *testing.T) {
	t.Parallel()

	ctx := jgen.NewContext()

	got, err := jgen.Render(ctx, jgen.Sequence(jgen.Text("a"), nil, jgen.Text("b")))
	require.NoError(t, err)
	assert.Equal(t, "ab", got)
}

func TestGenerator_SequenceStopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	g := jgen.Sequence(
		jgen.Text("a"),
		jgen.GeneratorFunc[*jgen.Builder](func(*jgen.Builder) error { return boom }),
		jgen.Text("b"),
	)

	_, err := jgen.Render(jgen.NewContext(), g)
	assert.ErrorIs(t, err, boom)
}

type wrapped struct {
	*jgen.Builder
}

func TestGenerator_Generalize(t *testing.T) {
	t.Parallel()

	assert.Nil(t, jgen.Generalize[*jgen.Builder, *wrapped](nil, nil))

	g := jgen.Generalize(jgen.Text("x"), func(w *wrapped) *jgen.Builder { return w.Builder })

	w := &wrapped{Builder: jgen.NewBuilder(jgen.NewContext())}
	require.NoError(t, g.Generate(w))
	assert.Equal(t, "x", w.String())
}

func TestRender_ReentrantAndNil(t *testing.T) {
	t.Parallel()

	ctx := jgen.NewContext()
	g := jgen.Text("same")

	first, err := jgen.Render(ctx, g)
	require.NoError(t, err)

	second, err := jgen.Render(ctx, g)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	empty, err := jgen.Render(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
