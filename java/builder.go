// Package java generates Java source: compilation units, types, fields, methods,
// annotations, comments, expressions and statements.
//
// Generators are mutable trees until they are generated. Generating never changes
// the caller's tree: every run works on a prepared copy on which the pre-processors
// have been applied, so a tree can be rendered repeatedly and against different
// environments.
//
// Output is structurally correct but not indented; run a formatter over it when
// layout matters.
package java

import (
	"strconv"
	"strings"

	"github.com/rlch/jgen"
)

// Builder is the Java source builder. It adds reference resolution to jgen.Builder.
type Builder struct {
	*jgen.Builder
}

// Generator emits Java source.
type Generator = jgen.Generator[*Builder]

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc = jgen.GeneratorFunc[*Builder]

// NewBuilder creates an empty Java builder for ctx.
func NewBuilder(ctx *jgen.Context) *Builder {
	return &Builder{Builder: jgen.NewBuilder(ctx)}
}

// Wrap converts a generic builder into a Java builder writing to the same buffer.
func Wrap(b *jgen.Builder) *Builder {
	return &Builder{Builder: b}
}

// Unwrap returns the underlying generic builder.
func Unwrap(b *Builder) *jgen.Builder {
	return b.Builder
}

// Ref writes a type reference, abbreviated when the active resolver allows it.
func (b *Builder) Ref(reference string) *Builder {
	b.Append(b.Context().Ref(reference))

	return b
}

// RefStatic writes a static member reference "pkg.Type.member".
func (b *Builder) RefStatic(member string) *Builder {
	b.Append(b.Context().RefStatic(member))

	return b
}

// StringLiteral writes s as a quoted Java string literal.
func (b *Builder) StringLiteral(s string) *Builder {
	b.Append(QuoteString(s))

	return b
}

// sub returns an empty builder sharing b's context.
func (b *Builder) sub() *Builder {
	return NewBuilder(b.Context())
}

// Render generates g into a fresh builder for ctx and returns the text.
func Render(ctx *jgen.Context, g Generator) (string, error) {
	return jgen.Render(ctx, jgen.Generalize(g, Wrap))
}

// QuoteString returns s as a Java string literal.
func QuoteString(s string) string {
	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				sb.WriteString(`\u`)

				hex := strconv.FormatInt(int64(r), 16)
				sb.WriteString(strings.Repeat("0", 4-len(hex)) + hex)

				continue
			}

			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}

// QuoteChar returns r as a Java character literal.
func QuoteChar(r rune) string {
	switch r {
	case '\'':
		return `'\''`
	case '"':
		return `'"'`
	}

	q := QuoteString(string(r))

	return "'" + q[1:len(q)-1] + "'"
}
