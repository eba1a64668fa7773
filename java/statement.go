package java

import "github.com/rlch/jgen"

// Statement returns a statement evaluating e: "e;".
func Statement(e Expression) Generator { //nolint:ireturn
	return jgen.Sequence(jgen.Generalize(e, Expr), terminator())
}

// Return returns "return e;", or "return;" for a nil expression.
func Return(e Expression) Generator { //nolint:ireturn
	return jgen.Sequence(keyword("return", e != nil), jgen.Generalize(e, Expr), terminator())
}

// Throw returns "throw e;".
func Throw(e Expression) Generator { //nolint:ireturn
	return jgen.Sequence(keyword("throw", true), jgen.Generalize(e, Expr), terminator())
}

// RawStatement emits source lines verbatim except for placeholders (see Raw). Each
// line ends with the context's line delimiter.
func RawStatement(text string) Generator { //nolint:ireturn
	return GeneratorFunc(func(b *Builder) error {
		for _, line := range splitLines(text) {
			expand(b, line)
			b.NL()
		}

		return nil
	})
}

// Block returns the statements in order.
func Block(statements ...Generator) Generator { //nolint:ireturn
	return jgen.Sequence(statements...)
}

func keyword(kw string, space bool) Generator { //nolint:ireturn
	return GeneratorFunc(func(b *Builder) error {
		b.Append(kw)

		if space {
			b.Space()
		}

		return nil
	})
}

func terminator() Generator { //nolint:ireturn
	return GeneratorFunc(func(b *Builder) error {
		b.Semicolon().NL()

		return nil
	})
}
