package java

import (
	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
)

// FieldGenerator emits a field declaration.
type FieldGenerator struct {
	Annotatable[*FieldGenerator]

	modifiers   Modifiers
	typ         *api.Func[string]
	initializer Expression
}

// Field creates a field of the given type reference.
func Field(typ, name string) *FieldGenerator {
	f := &FieldGenerator{typ: api.Const(typ)}
	f.Annotatable = newAnnotatable(f, name)

	return f
}

// WithModifiers replaces the modifiers.
func (f *FieldGenerator) WithModifiers(m Modifiers) *FieldGenerator {
	f.modifiers = m

	return f
}

// AddModifiers adds modifiers.
func (f *FieldGenerator) AddModifiers(m Modifiers) *FieldGenerator {
	f.modifiers |= m

	return f
}

// RemoveModifiers removes modifiers.
func (f *FieldGenerator) RemoveModifiers(m Modifiers) *FieldGenerator {
	f.modifiers &^= m

	return f
}

// Modifiers returns the modifiers.
func (f *FieldGenerator) Modifiers() Modifiers {
	return f.modifiers
}

// WithType sets the type reference.
func (f *FieldGenerator) WithType(typ string) *FieldGenerator {
	f.typ = api.Const(typ)

	return f
}

// WithTypeFunc sets a type reference resolved against the environment.
func (f *FieldGenerator) WithTypeFunc(fn *api.Func[string]) *FieldGenerator {
	f.typ = fn

	return f
}

// Type returns the type source.
func (f *FieldGenerator) Type() *api.Func[string] {
	return f.typ
}

// WithInitializer sets the initializer expression.
func (f *FieldGenerator) WithInitializer(e Expression) *FieldGenerator {
	f.initializer = e

	return f
}

// Initializer returns the initializer, or nil.
func (f *FieldGenerator) Initializer() Expression { //nolint:ireturn
	return f.initializer
}

// Generate implements Generator.
func (f *FieldGenerator) Generate(b *Builder) error {
	p, err := f.prepare(b.Context(), f.declaring)
	if err != nil {
		return err
	}

	return p.emit(b)
}

func (f *FieldGenerator) clone() *FieldGenerator {
	c := *f
	c.Annotatable = f.cloneAnnotatableFor(&c)

	return &c
}

// prepare returns a copy with pre-processors applied, declared by parent.
func (f *FieldGenerator) prepare(ctx *jgen.Context, parent Declaring) (*FieldGenerator, error) {
	c := f.clone()
	c.declaring = parent

	if err := c.preProcess(ctx); err != nil {
		return nil, err
	}

	if err := c.prepareAnnotations(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (f *FieldGenerator) emit(b *Builder) error {
	ctx := b.Context()

	name, err := f.requireName(ctx, "field")
	if err != nil {
		return err
	}

	typ, err := evalType(ctx, f.typ, "field "+name)
	if err != nil {
		return err
	}

	if err := f.emitComment(b); err != nil {
		return err
	}

	if err := f.emitAnnotations(b, false); err != nil {
		return err
	}

	f.modifiers.emit(b)
	b.Ref(typ).Space().Append(name)

	if f.initializer != nil {
		b.EqualSign()

		if err := emitExpression(b, f.initializer); err != nil {
			return err
		}
	}

	b.Semicolon()

	return nil
}
