package java

import (
	"slices"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
)

// AnnotationGenerator emits an annotation such as @WebService(name = "Echo").
// Its element name is the annotation type.
type AnnotationGenerator struct {
	Element[*AnnotationGenerator]

	values []annotationValue
}

type annotationValue struct {
	name  string
	value Expression
}

// Annotation creates an annotation of the given type.
func Annotation(fqn string) *AnnotationGenerator {
	a := &AnnotationGenerator{}
	a.Element = newElement(a, fqn)

	return a
}

// AnnotationFunc creates an annotation whose type depends on the environment.
func AnnotationFunc(fn *api.Func[string]) *AnnotationGenerator {
	a := &AnnotationGenerator{}
	a.Element = newElement(a, "")
	a.name = fn

	return a
}

// WithValue sets an element value. Setting an existing element replaces its value in
// place. A single element named "value" is emitted without its name.
func (a *AnnotationGenerator) WithValue(name string, value Expression) *AnnotationGenerator {
	for i, v := range a.values {
		if v.name == name {
			a.values[i].value = value

			return a
		}
	}

	a.values = append(a.values, annotationValue{name: name, value: value})

	return a
}

// WithStringValue sets an element to a string literal.
func (a *AnnotationGenerator) WithStringValue(name, value string) *AnnotationGenerator {
	return a.WithValue(name, StringLiteral(value))
}

// RemoveValue removes an element value.
func (a *AnnotationGenerator) RemoveValue(name string) *AnnotationGenerator {
	a.values = slices.DeleteFunc(a.values, func(v annotationValue) bool {
		return v.name == name
	})

	return a
}

// ValueNames returns the names of the set elements in order.
func (a *AnnotationGenerator) ValueNames() []string {
	names := make([]string, len(a.values))
	for i, v := range a.values {
		names[i] = v.name
	}

	return names
}

// Value returns the value of an element.
func (a *AnnotationGenerator) Value(name string) (Expression, bool) { //nolint:ireturn
	for _, v := range a.values {
		if v.name == name {
			return v.value, true
		}
	}

	return nil, false
}

// Generate implements Generator.
func (a *AnnotationGenerator) Generate(b *Builder) error {
	p, err := a.prepare(b.Context())
	if err != nil {
		return err
	}

	return p.emit(b)
}

func (a *AnnotationGenerator) clone() *AnnotationGenerator {
	c := &AnnotationGenerator{values: slices.Clone(a.values)}
	c.Element = a.cloneFor(c)

	return c
}

func (a *AnnotationGenerator) prepare(ctx *jgen.Context) (*AnnotationGenerator, error) {
	c := a.clone()
	if err := c.preProcess(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (a *AnnotationGenerator) emit(b *Builder) error {
	name, err := a.requireName(b.Context(), "annotation")
	if err != nil {
		return err
	}

	b.AppendRune('@')
	b.Ref(name)

	if len(a.values) == 0 {
		return nil
	}

	b.ParenOpen()

	if len(a.values) == 1 && a.values[0].name == "value" {
		if err := emitExpression(b, a.values[0].value); err != nil {
			return err
		}
	} else {
		for i, v := range a.values {
			if i > 0 {
				b.Comma()
			}

			b.Append(v.name).EqualSign()

			if err := emitExpression(b, v.value); err != nil {
				return err
			}
		}
	}

	b.ParenClose()

	return nil
}
