package java

import (
	"regexp"
	"strings"

	"github.com/rlch/jgen"
)

// ExpressionBuilder is the builder expression generators write to. Expressions can
// be embedded wherever a Builder is available through Expr.
type ExpressionBuilder struct {
	*Builder
}

// Expression emits a Java expression.
type Expression = jgen.Generator[*ExpressionBuilder]

// ExpressionFunc adapts a function to Expression.
type ExpressionFunc = jgen.GeneratorFunc[*ExpressionBuilder]

// Expr converts a builder into an expression builder on the same buffer.
func Expr(b *Builder) *ExpressionBuilder {
	return &ExpressionBuilder{Builder: b}
}

func emitExpression(b *Builder, e Expression) error {
	if e == nil {
		return nil
	}

	return e.Generate(Expr(b))
}

func emitExpressions(b *Builder, es []Expression) error {
	for i, e := range es {
		if i > 0 {
			b.Comma()
		}

		if err := emitExpression(b, e); err != nil {
			return err
		}
	}

	return nil
}

// placeholder matches {{a.b.C}} type references and {{static a.b.C.member}} static
// member references inside raw source.
var placeholder = regexp.MustCompile(`\{\{\s*(static\s+)?([^{}]+?)\s*\}\}`)

// expand writes raw source, resolving placeholders through the builder.
func expand(b *Builder, text string) {
	last := 0

	for _, m := range placeholder.FindAllStringSubmatchIndex(text, -1) {
		b.Append(text[last:m[0]])

		ref := text[m[4]:m[5]]
		if m[2] >= 0 {
			b.RefStatic(ref)
		} else {
			b.Ref(ref)
		}

		last = m[1]
	}

	b.Append(text[last:])
}

// Raw returns an expression emitting text verbatim except for {{fqn}} and
// {{static fqn.member}} placeholders, which are resolved like any reference.
func Raw(text string) Expression { //nolint:ireturn
	return ExpressionFunc(func(b *ExpressionBuilder) error {
		expand(b.Builder, text)

		return nil
	})
}

// Literal returns an expression emitting text verbatim.
func Literal(text string) Expression { //nolint:ireturn
	return ExpressionFunc(func(b *ExpressionBuilder) error {
		b.Append(text)

		return nil
	})
}

// Null returns the null literal.
func Null() Expression { //nolint:ireturn
	return Literal("null")
}

// Bool returns a boolean literal.
func Bool(v bool) Expression { //nolint:ireturn
	if v {
		return Literal("true")
	}

	return Literal("false")
}

// StringLiteral returns a quoted string literal.
func StringLiteral(s string) Expression { //nolint:ireturn
	return Literal(QuoteString(s))
}

// CharLiteral returns a quoted character literal.
func CharLiteral(r rune) Expression { //nolint:ireturn
	return Literal(QuoteChar(r))
}

// ClassLiteral returns "Type.class".
func ClassLiteral(reference string) Expression { //nolint:ireturn
	return ExpressionFunc(func(b *ExpressionBuilder) error {
		b.Ref(reference).Append(".class")

		return nil
	})
}

// New returns an instance creation "new Type(args)".
func New(reference string, args ...Expression) Expression { //nolint:ireturn
	return ExpressionFunc(func(b *ExpressionBuilder) error {
		b.Append("new ")
		b.Ref(reference).ParenOpen()

		if err := emitExpressions(b.Builder, args); err != nil {
			return err
		}

		b.ParenClose()

		return nil
	})
}

// Call returns a method invocation. A nil target calls an unqualified method.
func Call(target Expression, method string, args ...Expression) Expression { //nolint:ireturn
	return ExpressionFunc(func(b *ExpressionBuilder) error {
		if target != nil {
			if err := target.Generate(b); err != nil {
				return err
			}

			b.Dot()
		}

		b.Append(method).ParenOpen()

		if err := emitExpressions(b.Builder, args); err != nil {
			return err
		}

		b.ParenClose()

		return nil
	})
}

// StaticCall returns an invocation of a static method "pkg.Type.method".
func StaticCall(member string, args ...Expression) Expression { //nolint:ireturn
	return ExpressionFunc(func(b *ExpressionBuilder) error {
		b.RefStatic(member).ParenOpen()

		if err := emitExpressions(b.Builder, args); err != nil {
			return err
		}

		b.ParenClose()

		return nil
	})
}

// Access returns a field access "target.name".
func Access(target Expression, name string) Expression { //nolint:ireturn
	return ExpressionFunc(func(b *ExpressionBuilder) error {
		if err := target.Generate(b); err != nil {
			return err
		}

		b.Dot().Append(name)

		return nil
	})
}

// ArrayInit returns an array initializer "{a, b}", as used in annotation values.
func ArrayInit(values ...Expression) Expression { //nolint:ireturn
	return ExpressionFunc(func(b *ExpressionBuilder) error {
		b.BlockStart()

		if err := emitExpressions(b.Builder, values); err != nil {
			return err
		}

		b.BlockEnd()

		return nil
	})
}

// AnnotationExpr embeds an annotation as an expression, e.g. a nested annotation value.
func AnnotationExpr(a *AnnotationGenerator) Expression { //nolint:ireturn
	return jgen.Generalize[*Builder](a, func(b *ExpressionBuilder) *Builder {
		return b.Builder
	})
}

// splitLines splits text on "\n", dropping "\r" before it.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	return lines
}
