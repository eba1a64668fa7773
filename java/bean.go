package java

import (
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/rlch/jgen"
)

// Property is a bean property: a private field with accessors.
type Property struct {
	Name     string
	Type     string
	ReadOnly bool
}

// WithBeanProperties returns a pre-processor adding a private field, a getter and,
// unless the property is read-only, a setter for each property. A repeated name
// replaces the earlier definition in place.
func WithBeanProperties(props ...Property) PreProcessor[*TypeGenerator] {
	return func(t *TypeGenerator, ctx *jgen.Context) error {
		unique := jgen.NewProperties()

		for _, p := range props {
			if _, dup := unique.Get(p.Name); dup {
				ctx.Logger().Warn("duplicate bean property",
					zap.String("property", p.Name))
			}

			unique.Set(p.Name, p)
		}

		for _, name := range unique.Keys() {
			v, _ := unique.Get(name)
			p := v.(Property) //nolint:forcetypeassert

			t.AddField(Field(p.Type, p.Name).WithModifiers(Private))
			t.AddMethod(getter(p))

			if !p.ReadOnly {
				t.AddMethod(setter(p))
			}
		}

		return nil
	}
}

func getter(p Property) *MethodGenerator {
	prefix := "get"
	if p.Type == "boolean" {
		prefix = "is"
	}

	return Method(prefix + capitalize(p.Name)).
		WithModifiers(Public).
		WithReturnType(p.Type).
		WithStatements(Return(Raw("this." + p.Name)))
}

func setter(p Property) *MethodGenerator {
	return Method("set" + capitalize(p.Name)).
		WithModifiers(Public).
		WithParameter(Parameter(p.Type, p.Name)).
		WithStatements(Statement(Raw("this." + p.Name + " = " + p.Name)))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
