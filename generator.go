// Package jgen is a structured source generation engine.
//
// Generators emit source text into a Builder bound to a Context. Two decisions are
// deferred until generation time: how each type reference is spelled (simple name
// plus import, or fully qualified), and which version-dependent spelling of an API
// construct applies in the environment the Context is bound to.
//
// # Runs
//
// A run owns one Context. Values computed by API functions are memoized for the run
// and dropped by BeginRun:
//
//	ctx := jgen.NewContext(jgen.WithEnvironment(snapshot))
//	src, err := jgen.Render(ctx, gen)
//
// The same generator tree may be rendered against contexts bound to different
// environments and yields different source for each.
package jgen

// Generator emits source into a builder of type B.
//
// Generate must be re-entrant: invoking it twice with fresh builders bound to the same
// context configuration yields identical text.
type Generator[B any] interface {
	Generate(b B) error
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc[B any] func(b B) error

// Generate calls f(b).
func (f GeneratorFunc[B]) Generate(b B) error {
	return f(b)
}

// Generalize adapts a generator written against builder S into one accepting builder
// B, converting the builder at call time. A nil generator stays nil.
func Generalize[S, B any](g Generator[S], conv func(B) S) Generator[B] { //nolint:ireturn
	if g == nil {
		return nil
	}

	return GeneratorFunc[B](func(b B) error {
		return g.Generate(conv(b))
	})
}

// Sequence returns a generator running gs in order, skipping nil entries.
func Sequence[B any](gs ...Generator[B]) Generator[B] { //nolint:ireturn
	return GeneratorFunc[B](func(b B) error {
		for _, g := range gs {
			if g == nil {
				continue
			}

			if err := g.Generate(b); err != nil {
				return err
			}
		}

		return nil
	})
}

// Text returns a generator appending constant text.
func Text(s string) Generator[*Builder] { //nolint:ireturn
	return GeneratorFunc[*Builder](func(b *Builder) error {
		b.Append(s)

		return nil
	})
}

// Render starts a new run on ctx and returns the text emitted by g.
func Render(ctx *Context, g Generator[*Builder]) (string, error) {
	ctx.BeginRun()

	b := NewBuilder(ctx)
	if g != nil {
		if err := g.Generate(b); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}
