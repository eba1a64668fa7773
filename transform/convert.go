package transform

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rlch/jgen/api"
	"github.com/rlch/jgen/java"
	"github.com/rlch/jgen/model"
)

// Unit converts a unit model into a compilation-unit generator. A nil transformer
// converts every element verbatim. A nil result means the transformer dropped the unit.
func Unit(u *model.Unit, t Transformer) (*java.CompilationUnitGenerator, error) {
	if t == nil {
		t = Default{}
	}

	c := &converter{t: t}

	return c.unit(u)
}

// Units converts every unit of a descriptor, skipping dropped ones.
func Units(f *model.File, t Transformer) ([]*java.CompilationUnitGenerator, error) {
	units := make([]*java.CompilationUnitGenerator, 0, len(f.Units))

	for _, u := range f.Units {
		g, err := Unit(u, t)
		if err != nil {
			return nil, err
		}

		if g != nil {
			units = append(units, g)
		}
	}

	return units, nil
}

type converter struct {
	t Transformer
}

// Name returns the name source for a model name: an API symbol for "$kind.Symbol",
// a constant otherwise.
func Name(s string) *api.Func[string] {
	if kind, symbol, ok := model.ParseSymbol(s); ok {
		return api.Symbol(kind, symbol)
	}

	return api.Const(s)
}

// Guard returns the guard for a "when" condition, or nil when there is none.
func Guard(condition string) *api.Func[bool] {
	if strings.TrimSpace(condition) == "" {
		return nil
	}

	return api.When(condition)
}

func (c *converter) unit(u *model.Unit) (*java.CompilationUnitGenerator, error) {
	return c.t.Unit(newInput(u, func() (*java.CompilationUnitGenerator, error) {
		pkg, err := c.t.Package(newInput(u.Package, func() (string, error) {
			return u.Package, nil
		}))
		if err != nil {
			return nil, err
		}

		g := java.CompilationUnit(pkg)

		if u.Name != "" {
			g.WithName(u.Name)
		}

		if len(u.Header) > 0 {
			g.WithComment(java.BlockComment(u.Header...))
		}

		for _, imp := range u.Imports {
			s, err := c.t.Import(newInput(imp, func() (string, error) {
				return imp, nil
			}))
			if err != nil {
				return nil, err
			}

			if s != "" {
				g.WithImport(s)
			}
		}

		for _, imp := range u.StaticImports {
			s, err := c.t.StaticImport(newInput(imp, func() (string, error) {
				return imp, nil
			}))
			if err != nil {
				return nil, err
			}

			if s != "" {
				g.WithStaticImport(s)
			}
		}

		for _, mt := range u.Types {
			tg, err := c.typ(mt)
			if err != nil {
				return nil, err
			}

			if tg != nil {
				g.AddType(tg)
			}
		}

		for _, footer := range u.Footer {
			g.WithFooter(raw(footer))
		}

		return g, nil
	}))
}

func (c *converter) typ(m *model.Type) (*java.TypeGenerator, error) {
	return c.t.Type(newInput(m, func() (*java.TypeGenerator, error) {
		kind := java.Class

		if m.Kind != "" {
			k, err := java.ParseKind(m.Kind)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", m.Name)
			}

			kind = k
		}

		mods, err := java.ParseModifiers(m.Modifiers...)
		if err != nil {
			return nil, errors.Wrapf(err, "type %s", m.Name)
		}

		g := java.Type(kind, "").
			WithNameFunc(Name(m.Name)).
			WithModifiers(mods).
			WithTypeParameters(typeParameters(m.TypeParameters)...).
			WithGuard(Guard(m.When))

		if len(m.Doc) > 0 {
			g.WithComment(java.Javadoc(m.Doc...))
		}

		if err := c.annotations(m.Annotations, func(a *java.AnnotationGenerator) { g.WithAnnotation(a) }); err != nil {
			return nil, err
		}

		if m.Extends != "" {
			g.WithSuperclassFunc(Name(m.Extends))
		}

		for _, iface := range m.Implements {
			g.WithInterfaceFunc(Name(iface))
		}

		for _, k := range m.Constants {
			args := make([]java.Expression, len(k.Args))
			for i, arg := range k.Args {
				args[i] = java.Raw(arg)
			}

			g.WithEnumConstant(k.Name, args...)
		}

		if err := c.parameters(m.Components, func(p *java.MethodParameterGenerator) { g.WithComponent(p) }); err != nil {
			return nil, err
		}

		if len(m.Properties) > 0 {
			props := make([]java.Property, len(m.Properties))
			for i, p := range m.Properties {
				props[i] = java.Property{Name: p.Name, Type: p.Type, ReadOnly: p.ReadOnly}
			}

			g.WithPreProcessor(java.WithBeanProperties(props...))
		}

		for _, mf := range m.Fields {
			f, err := c.field(mf)
			if err != nil {
				return nil, err
			}

			if f != nil {
				g.AddField(f)
			}
		}

		for _, mm := range m.Methods {
			method, err := c.method(mm)
			if err != nil {
				return nil, err
			}

			if method != nil {
				g.AddMethod(method)
			}
		}

		for _, nested := range m.Types {
			ng, err := c.typ(nested)
			if err != nil {
				return nil, err
			}

			if ng != nil {
				g.AddType(ng)
			}
		}

		return g, nil
	}))
}

func (c *converter) field(m *model.Field) (*java.FieldGenerator, error) {
	return c.t.Field(newInput(m, func() (*java.FieldGenerator, error) {
		mods, err := java.ParseModifiers(m.Modifiers...)
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", m.Name)
		}

		g := java.Field("", m.Name).
			WithTypeFunc(Name(m.Type)).
			WithModifiers(mods).
			WithGuard(Guard(m.When))

		if len(m.Doc) > 0 {
			g.WithComment(java.Javadoc(m.Doc...))
		}

		if m.Initializer != "" {
			g.WithInitializer(java.Raw(m.Initializer))
		}

		if err := c.annotations(m.Annotations, func(a *java.AnnotationGenerator) { g.WithAnnotation(a) }); err != nil {
			return nil, err
		}

		return g, nil
	}))
}

func (c *converter) method(m *model.Method) (*java.MethodGenerator, error) {
	return c.t.Method(newInput(m, func() (*java.MethodGenerator, error) {
		mods, err := java.ParseModifiers(m.Modifiers...)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", m.Name)
		}

		var g *java.MethodGenerator

		if m.Constructor {
			g = java.Constructor()
		} else {
			g = java.Method("").WithNameFunc(Name(m.Name))
		}

		g.WithModifiers(mods).
			WithTypeParameters(typeParameters(m.TypeParameters)...).
			WithThrows(m.Throws...).
			WithGuard(Guard(m.When))

		if m.Returns != "" && !m.Constructor {
			g.WithReturnTypeFunc(Name(m.Returns))
		}

		if len(m.Doc) > 0 {
			g.WithComment(java.Javadoc(m.Doc...))
		}

		if m.Default != "" {
			g.WithDefault(java.Raw(m.Default))
		}

		if m.Body != nil {
			g.WithBody(body(*m.Body))
		}

		if err := c.annotations(m.Annotations, func(a *java.AnnotationGenerator) { g.WithAnnotation(a) }); err != nil {
			return nil, err
		}

		if err := c.parameters(m.Parameters, func(p *java.MethodParameterGenerator) { g.WithParameter(p) }); err != nil {
			return nil, err
		}

		return g, nil
	}))
}

func (c *converter) parameters(ms []*model.Parameter, add func(*java.MethodParameterGenerator)) error {
	for _, m := range ms {
		g, err := c.t.Parameter(newInput(m, func() (*java.MethodParameterGenerator, error) {
			g := java.Parameter("", m.Name).
				WithTypeFunc(Name(m.Type)).
				WithFinal(m.Final).
				WithVarargs(m.Varargs).
				WithGuard(Guard(m.When))

			if err := c.annotations(m.Annotations, func(a *java.AnnotationGenerator) { g.WithAnnotation(a) }); err != nil {
				return nil, err
			}

			return g, nil
		}))
		if err != nil {
			return err
		}

		if g != nil {
			add(g)
		}
	}

	return nil
}

func (c *converter) annotations(ms []*model.Annotation, add func(*java.AnnotationGenerator)) error {
	for _, m := range ms {
		g, err := c.t.Annotation(newInput(m, func() (*java.AnnotationGenerator, error) {
			g := java.AnnotationFunc(Name(m.Type)).WithGuard(Guard(m.When))

			for _, v := range m.Values {
				if v.String != nil {
					g.WithStringValue(v.Name, *v.String)
				} else {
					g.WithValue(v.Name, java.Raw(v.Expr))
				}
			}

			return g, nil
		}))
		if err != nil {
			return err
		}

		if g != nil {
			add(g)
		}
	}

	return nil
}

func typeParameters(ms []*model.TypeParameter) []*java.TypeParameter {
	params := make([]*java.TypeParameter, len(ms))
	for i, m := range ms {
		params[i] = java.TypeParam(m.Name, m.Bounds...)
	}

	return params
}

// body converts raw method source. An empty body declares "{}".
func body(text string) java.Generator { //nolint:ireturn
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return java.Block()
	}

	return java.RawStatement(text)
}

func raw(text string) java.Generator { //nolint:ireturn
	return java.RawStatement(strings.TrimRight(text, "\r\n"))
}
