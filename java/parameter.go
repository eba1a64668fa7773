package java

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
)

// MethodParameterGenerator emits a method, constructor or record parameter.
// Its annotations are written inline.
type MethodParameterGenerator struct {
	Annotatable[*MethodParameterGenerator]

	final   bool
	varargs bool
	typ     *api.Func[string]
}

// Parameter creates a parameter of the given type reference.
func Parameter(typ, name string) *MethodParameterGenerator {
	p := &MethodParameterGenerator{typ: api.Const(typ)}
	p.Annotatable = newAnnotatable(p, name)

	return p
}

// WithFinal marks the parameter final.
func (p *MethodParameterGenerator) WithFinal(final bool) *MethodParameterGenerator {
	p.final = final

	return p
}

// IsFinal reports whether the parameter is final.
func (p *MethodParameterGenerator) IsFinal() bool {
	return p.final
}

// WithVarargs marks the parameter as variable arity.
func (p *MethodParameterGenerator) WithVarargs(varargs bool) *MethodParameterGenerator {
	p.varargs = varargs

	return p
}

// IsVarargs reports whether the parameter has variable arity.
func (p *MethodParameterGenerator) IsVarargs() bool {
	return p.varargs
}

// WithType sets the type reference.
func (p *MethodParameterGenerator) WithType(typ string) *MethodParameterGenerator {
	p.typ = api.Const(typ)

	return p
}

// WithTypeFunc sets a type reference resolved against the environment.
func (p *MethodParameterGenerator) WithTypeFunc(fn *api.Func[string]) *MethodParameterGenerator {
	p.typ = fn

	return p
}

// Type returns the type source.
func (p *MethodParameterGenerator) Type() *api.Func[string] {
	return p.typ
}

// Generate implements Generator.
func (p *MethodParameterGenerator) Generate(b *Builder) error {
	c, err := p.prepare(b.Context())
	if err != nil {
		return err
	}

	return c.emit(b)
}

func (p *MethodParameterGenerator) clone() *MethodParameterGenerator {
	c := *p
	c.Annotatable = p.cloneAnnotatableFor(&c)

	return &c
}

func (p *MethodParameterGenerator) prepare(ctx *jgen.Context) (*MethodParameterGenerator, error) {
	c := p.clone()
	if err := c.preProcess(ctx); err != nil {
		return nil, err
	}

	if err := c.prepareAnnotations(ctx); err != nil {
		return nil, err
	}

	return c, nil
}

func (p *MethodParameterGenerator) emit(b *Builder) error {
	ctx := b.Context()

	name, err := p.requireName(ctx, "parameter")
	if err != nil {
		return err
	}

	typ, err := evalType(ctx, p.typ, "parameter "+name)
	if err != nil {
		return err
	}

	if err := p.emitAnnotations(b, true); err != nil {
		return err
	}

	if p.final {
		b.Append("final ")
	}

	b.Ref(typ)

	if p.varargs && !strings.HasSuffix(typ, "...") {
		b.Append("...")
	}

	b.Space().Append(name)

	return nil
}

// evalType resolves a mandatory type reference.
func evalType(ctx *jgen.Context, fn *api.Func[string], what string) (string, error) {
	if fn == nil {
		return "", errors.Wrapf(ErrMissingType, "%s", what)
	}

	typ, err := fn.Eval(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "resolving type of %s", what)
	}

	typ = strings.TrimSpace(typ)
	if typ == "" {
		return "", errors.Wrapf(ErrMissingType, "%s", what)
	}

	return typ, nil
}

func cloneParameters(params []*MethodParameterGenerator) []*MethodParameterGenerator {
	if params == nil {
		return nil
	}

	out := make([]*MethodParameterGenerator, len(params))
	for i, p := range params {
		out[i] = p.clone()
	}

	return out
}

func prepareParameters(ctx *jgen.Context, params []*MethodParameterGenerator) ([]*MethodParameterGenerator, error) {
	prepared := make([]*MethodParameterGenerator, 0, len(params))

	for _, param := range params {
		ok, err := param.admitted(ctx)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		c, err := param.prepare(ctx)
		if err != nil {
			return nil, err
		}

		prepared = append(prepared, c)
	}

	return prepared, nil
}

func emitParameters(b *Builder, params []*MethodParameterGenerator) error {
	b.ParenOpen()

	for i, param := range params {
		if i > 0 {
			b.Comma()
		}

		if err := param.emit(b); err != nil {
			return err
		}
	}

	b.ParenClose()

	return nil
}
