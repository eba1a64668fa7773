package java

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
)

const void = "void"

// MethodGenerator emits a method or constructor declaration. A method without a body
// ends with ";" (abstract and interface methods, annotation members).
type MethodGenerator struct {
	Annotatable[*MethodGenerator]

	modifiers    Modifiers
	typeParams   []*TypeParameter
	returnType   *api.Func[string]
	constructor  bool
	params       []*MethodParameterGenerator
	throws       []string
	defaultValue Expression
	body         Generator
}

// Method creates a method returning void.
func Method(name string) *MethodGenerator {
	m := &MethodGenerator{returnType: api.Const(void)}
	m.Annotatable = newAnnotatable(m, name)

	return m
}

// Constructor creates a constructor. Its name is taken from the declaring type.
func Constructor() *MethodGenerator {
	m := &MethodGenerator{constructor: true, body: Block()}
	m.Annotatable = newAnnotatable(m, "")

	return m
}

// IsConstructor reports whether m is a constructor.
func (m *MethodGenerator) IsConstructor() bool {
	return m.constructor
}

// WithModifiers replaces the modifiers.
func (m *MethodGenerator) WithModifiers(mods Modifiers) *MethodGenerator {
	m.modifiers = mods

	return m
}

// AddModifiers adds modifiers.
func (m *MethodGenerator) AddModifiers(mods Modifiers) *MethodGenerator {
	m.modifiers |= mods

	return m
}

// RemoveModifiers removes modifiers.
func (m *MethodGenerator) RemoveModifiers(mods Modifiers) *MethodGenerator {
	m.modifiers &^= mods

	return m
}

// Modifiers returns the modifiers.
func (m *MethodGenerator) Modifiers() Modifiers {
	return m.modifiers
}

// WithTypeParameters sets the type parameters.
func (m *MethodGenerator) WithTypeParameters(params ...*TypeParameter) *MethodGenerator {
	m.typeParams = params

	return m
}

// WithReturnType sets the return type reference.
func (m *MethodGenerator) WithReturnType(typ string) *MethodGenerator {
	m.returnType = api.Const(typ)

	return m
}

// WithReturnTypeFunc sets a return type resolved against the environment.
func (m *MethodGenerator) WithReturnTypeFunc(fn *api.Func[string]) *MethodGenerator {
	m.returnType = fn

	return m
}

// ReturnType returns the return type source. It is nil for constructors.
func (m *MethodGenerator) ReturnType() *api.Func[string] {
	if m.constructor {
		return nil
	}

	return m.returnType
}

// WithParameter appends parameters.
func (m *MethodGenerator) WithParameter(params ...*MethodParameterGenerator) *MethodGenerator {
	m.params = append(m.params, params...)

	return m
}

// Parameters returns the parameters.
func (m *MethodGenerator) Parameters() []*MethodParameterGenerator {
	return slices.Clone(m.params)
}

// RemoveParameter removes the parameters with a constant name.
func (m *MethodGenerator) RemoveParameter(name string) *MethodGenerator {
	m.params = slices.DeleteFunc(m.params, func(p *MethodParameterGenerator) bool {
		n, _ := p.ElementName()

		return n == name
	})

	return m
}

// WithThrows appends exception type references.
func (m *MethodGenerator) WithThrows(types ...string) *MethodGenerator {
	m.throws = append(m.throws, types...)

	return m
}

// Throws returns the declared exceptions.
func (m *MethodGenerator) Throws() []string {
	return slices.Clone(m.throws)
}

// WithDefault sets the default value of an annotation type member.
func (m *MethodGenerator) WithDefault(e Expression) *MethodGenerator {
	m.defaultValue = e

	return m
}

// WithBody sets the body. A nil body emits ";".
func (m *MethodGenerator) WithBody(body Generator) *MethodGenerator {
	m.body = body

	return m
}

// WithStatements sets a body consisting of the given statements.
func (m *MethodGenerator) WithStatements(statements ...Generator) *MethodGenerator {
	return m.WithBody(Block(statements...))
}

// Body returns the body, or nil.
func (m *MethodGenerator) Body() Generator { //nolint:ireturn
	return m.body
}

// Generate implements Generator.
func (m *MethodGenerator) Generate(b *Builder) error {
	p, err := m.prepare(b.Context(), m.declaring)
	if err != nil {
		return err
	}

	return p.emit(b)
}

func (m *MethodGenerator) clone() *MethodGenerator {
	c := *m
	c.Annotatable = m.cloneAnnotatableFor(&c)
	c.typeParams = cloneTypeParameters(m.typeParams)
	c.params = cloneParameters(m.params)
	c.throws = slices.Clone(m.throws)

	return &c
}

// prepare returns a copy with pre-processors applied, declared by parent.
func (m *MethodGenerator) prepare(ctx *jgen.Context, parent Declaring) (*MethodGenerator, error) {
	c := m.clone()
	c.declaring = parent

	if err := c.preProcess(ctx); err != nil {
		return nil, err
	}

	if err := c.prepareAnnotations(ctx); err != nil {
		return nil, err
	}

	params, err := prepareParameters(ctx, c.params)
	if err != nil {
		return nil, err
	}

	c.params = params

	return c, nil
}

func (m *MethodGenerator) methodName(ctx *jgen.Context) (string, error) {
	if !m.constructor {
		return m.requireName(ctx, "method")
	}

	if m.declaring != nil {
		if qn := m.declaring.QualifiedName(ctx); qn != "" {
			return jgen.SimpleName(qn), nil
		}
	}

	if name := m.ResolvedName(ctx); name != "" {
		return name, nil
	}

	return "", errors.Wrap(jgen.ErrMissingElementName, "constructor without declaring type")
}

func (m *MethodGenerator) emit(b *Builder) error {
	ctx := b.Context()

	name, err := m.methodName(ctx)
	if err != nil {
		return err
	}

	var returnType string
	if !m.constructor {
		returnType, err = evalType(ctx, m.returnType, "method "+name)
		if err != nil {
			return err
		}
	}

	if err := m.emitComment(b); err != nil {
		return err
	}

	if err := m.emitAnnotations(b, false); err != nil {
		return err
	}

	m.modifiers.emit(b)

	if exit := enterTypeVariables(ctx, m.typeParams); exit != nil {
		defer exit()
	}

	if len(m.typeParams) > 0 {
		emitTypeParameters(b, m.typeParams)
		b.Space()
	}

	if !m.constructor {
		b.Ref(returnType).Space()
	}

	b.Append(name)

	if err := emitParameters(b, m.params); err != nil {
		return err
	}

	for i, t := range m.throws {
		if i == 0 {
			b.Append(" throws ")
		} else {
			b.Comma()
		}

		b.Ref(t)
	}

	if m.defaultValue != nil {
		b.Append(" default ")

		if err := emitExpression(b, m.defaultValue); err != nil {
			return err
		}
	}

	if m.body == nil {
		b.Semicolon()

		return nil
	}

	b.Space().BlockStart().NL()

	if err := m.body.Generate(b); err != nil {
		return err
	}

	b.BlockEnd()

	return nil
}
