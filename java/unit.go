package java

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/imports"
)

// CompilationUnitGenerator emits a Java source file: an optional header comment, the
// package declaration, imports, static imports, the top-level types in sort-key
// order and footers.
//
// Generation runs twice over a prepared copy of the unit. The first pass only
// collects the references the unit uses; imports are then fixed, and the second pass
// produces the text.
type CompilationUnitGenerator struct {
	Element[*CompilationUnitGenerator]

	pkg           string
	imports       []string
	staticImports []string
	types         []member[*TypeGenerator]
	footers       []Generator
}

// CompilationUnit creates a unit in package pkg. An empty pkg is the default package.
func CompilationUnit(pkg string) *CompilationUnitGenerator {
	u := &CompilationUnitGenerator{pkg: pkg}
	u.Element = newElement(u, "")

	return u
}

// Package returns the package name.
func (u *CompilationUnitGenerator) Package() string {
	return u.pkg
}

// WithPackage sets the package name.
func (u *CompilationUnitGenerator) WithPackage(pkg string) *CompilationUnitGenerator {
	u.pkg = pkg

	return u
}

// WithImport declares imports that are always emitted ("a.b.C" or "a.b.*").
func (u *CompilationUnitGenerator) WithImport(refs ...string) *CompilationUnitGenerator {
	for _, ref := range refs {
		if !slices.Contains(u.imports, ref) {
			u.imports = append(u.imports, ref)
		}
	}

	return u
}

// WithStaticImport declares static imports ("a.b.C.m" or "a.b.C.*").
func (u *CompilationUnitGenerator) WithStaticImport(refs ...string) *CompilationUnitGenerator {
	for _, ref := range refs {
		if !slices.Contains(u.staticImports, ref) {
			u.staticImports = append(u.staticImports, ref)
		}
	}

	return u
}

// DeclaredImports returns the declared imports and static imports.
func (u *CompilationUnitGenerator) DeclaredImports() ([]string, []string) {
	return slices.Clone(u.imports), slices.Clone(u.staticImports)
}

// AddType adds a top-level type keyed by its constant name.
func (u *CompilationUnitGenerator) AddType(t *TypeGenerator) *CompilationUnitGenerator {
	name, _ := t.ElementName()

	return u.AddTypeWithKey(t, SortKey{Order: OrderType, Name: name})
}

// AddTypeWithKey adds a top-level type with an explicit sort key.
func (u *CompilationUnitGenerator) AddTypeWithKey(t *TypeGenerator, key SortKey) *CompilationUnitGenerator {
	t.setDeclaring(u)
	u.types = append(u.types, member[*TypeGenerator]{gen: t, key: key})

	return u
}

// Types returns the top-level types in emission order.
func (u *CompilationUnitGenerator) Types() []*TypeGenerator {
	return sorted(u.types)
}

// RemoveType removes the top-level types whose resolved name is name and detaches
// them from the unit.
func (u *CompilationUnitGenerator) RemoveType(ctx *jgen.Context, name string) bool {
	return removeMembers(&u.types, func(t *TypeGenerator) bool {
		if t.ResolvedName(ctx) != name {
			return false
		}

		t.setDeclaring(nil)

		return true
	})
}

// MainType returns the first public type in emission order, or nil.
func (u *CompilationUnitGenerator) MainType() *TypeGenerator {
	for _, t := range sorted(u.types) {
		if t.IsPublic() {
			return t
		}
	}

	return nil
}

// WithFooter appends footer generators, emitted after the types.
func (u *CompilationUnitGenerator) WithFooter(gs ...Generator) *CompilationUnitGenerator {
	u.footers = append(u.footers, gs...)

	return u
}

// QualifiedName returns the package. It implements Declaring.
func (u *CompilationUnitGenerator) QualifiedName(*jgen.Context) string {
	return u.pkg
}

// FileName returns the source file name: the unit's name if set, otherwise the
// main type's name, with a ".java" suffix.
func (u *CompilationUnitGenerator) FileName(ctx *jgen.Context) (string, error) {
	if name := u.ResolvedName(ctx); name != "" {
		return name + ".java", nil
	}

	if main := u.MainType(); main != nil {
		if name := main.ResolvedName(ctx); name != "" {
			return name + ".java", nil
		}
	}

	return "", errors.Wrap(jgen.ErrMissingElementName, "compilation unit has neither a name nor a public type")
}

// CollectImports performs the collecting pass only and returns the imports and
// static imports the unit would emit.
func (u *CompilationUnitGenerator) CollectImports(ctx *jgen.Context) ([]string, []string, error) {
	p, r, err := u.begin(ctx)
	if err != nil {
		return nil, nil, err
	}

	restore := ctx.UseResolver(r)
	defer restore()

	if _, err := p.render(ctx); err != nil {
		return nil, nil, err
	}

	imps, statics := r.Resolve()

	return imps, statics, nil
}

// Generate implements Generator.
func (u *CompilationUnitGenerator) Generate(b *Builder) error {
	ctx := b.Context()

	p, r, err := u.begin(ctx)
	if err != nil {
		return err
	}

	restore := ctx.UseResolver(r)
	defer restore()

	if _, err := p.render(ctx); err != nil {
		return err
	}

	r.Resolve()
	r.BeginEmit()

	out, err := p.render(ctx)
	if err != nil {
		return err
	}

	p.assemble(b, r.Imports(), r.StaticImports(), out)

	return nil
}

// begin prepares and validates the unit and creates its resolver.
func (u *CompilationUnitGenerator) begin(ctx *jgen.Context) (*CompilationUnitGenerator, *imports.Resolver, error) {
	p, err := u.prepare(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := p.validate(ctx); err != nil {
		return nil, nil, err
	}

	r, err := p.newResolver(ctx)
	if err != nil {
		return nil, nil, err
	}

	return p, r, nil
}

func (u *CompilationUnitGenerator) clone() *CompilationUnitGenerator {
	c := *u
	c.Element = u.cloneFor(&c)
	c.imports = slices.Clone(u.imports)
	c.staticImports = slices.Clone(u.staticImports)
	c.types = cloneMembers(u.types, (*TypeGenerator).clone)
	c.footers = slices.Clone(u.footers)

	return &c
}

func (u *CompilationUnitGenerator) prepare(ctx *jgen.Context) (*CompilationUnitGenerator, error) {
	c := u.clone()
	if err := c.preProcess(ctx); err != nil {
		return nil, err
	}

	types, err := prepareMembers(ctx, c.types, func(t *TypeGenerator) (*TypeGenerator, error) {
		return t.process(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	c.types = types

	return c, nil
}

func (u *CompilationUnitGenerator) validate(ctx *jgen.Context) error {
	var public []string

	for _, t := range sorted(u.types) {
		if t.IsPublic() {
			public = append(public, t.ResolvedName(ctx))
		}
	}

	if len(public) > 1 {
		return errors.WithHintf(
			errors.Wrapf(jgen.ErrMultiplePublicTypes, "%s", strings.Join(public, ", ")),
			"move all but one public type into separate compilation units",
		)
	}

	return nil
}

func (u *CompilationUnitGenerator) newResolver(ctx *jgen.Context) (*imports.Resolver, error) {
	r := imports.NewResolver(u.pkg, ctx.Environment(), ctx.Logger())

	for _, ref := range u.imports {
		r.DeclareImport(ref)
	}

	for _, ref := range u.staticImports {
		r.DeclareStaticImport(ref)
	}

	for _, t := range sorted(u.types) {
		d, err := declaredType(ctx, t)
		if err != nil {
			return nil, err
		}

		r.DeclareType(d)
	}

	if main := u.MainType(); main != nil {
		r.SetMainType(main.QualifiedName(ctx))
	}

	return r, nil
}

// declaredType describes t and its nested types to the resolver.
func declaredType(ctx *jgen.Context, t *TypeGenerator) (*imports.DeclaredType, error) {
	superclass, interfaces, err := t.supertypes(ctx)
	if err != nil {
		return nil, err
	}

	d := &imports.DeclaredType{Name: t.QualifiedName(ctx)}

	for _, s := range append([]string{superclass}, interfaces...) {
		if s == "" {
			continue
		}

		if ref, err := jgen.ParseReference(s); err == nil && ref.Erasure() != "" {
			d.Supertypes = append(d.Supertypes, ref.Erasure())
		}
	}

	for _, c := range t.constants {
		d.Fields = append(d.Fields, c.Name)
	}

	for _, c := range t.components {
		if name := c.ResolvedName(ctx); name != "" {
			d.Fields = append(d.Fields, name)
			d.Methods = append(d.Methods, name)
		}
	}

	for _, f := range sorted(t.fields) {
		if name := f.ResolvedName(ctx); name != "" {
			d.Fields = append(d.Fields, name)
		}
	}

	for _, m := range sorted(t.methods) {
		if name := m.ResolvedName(ctx); name != "" {
			d.Methods = append(d.Methods, name)
		}
	}

	for _, nested := range sorted(t.types) {
		m, err := declaredType(ctx, nested)
		if err != nil {
			return nil, err
		}

		d.Members = append(d.Members, m)
	}

	return d, nil
}

type rendered struct {
	header  string
	types   []string
	footers []string
}

// render emits every part of the unit into separate buffers.
func (u *CompilationUnitGenerator) render(ctx *jgen.Context) (*rendered, error) {
	out := &rendered{}

	if u.comment != nil {
		b := NewBuilder(ctx)
		if err := u.comment.Generate(b); err != nil {
			return nil, err
		}

		out.header = b.String()
	}

	for _, t := range sorted(u.types) {
		b := NewBuilder(ctx)
		if err := t.emit(b); err != nil {
			return nil, err
		}

		out.types = append(out.types, b.String())
	}

	for _, f := range u.footers {
		if f == nil {
			continue
		}

		b := NewBuilder(ctx)
		if err := f.Generate(b); err != nil {
			return nil, err
		}

		if text := strings.TrimSuffix(b.String(), ctx.LineDelimiter()); text != "" {
			out.footers = append(out.footers, text)
		}
	}

	return out, nil
}

// assemble writes the sections separated by blank lines.
func (u *CompilationUnitGenerator) assemble(b *Builder, imps, statics []string, out *rendered) {
	nl := b.Context().LineDelimiter()

	var sections []string

	if u.pkg != "" {
		sections = append(sections, "package "+u.pkg+";")
	}

	if len(imps) > 0 {
		lines := make([]string, len(imps))
		for i, imp := range imps {
			lines[i] = "import " + imp + ";"
		}

		sections = append(sections, strings.Join(lines, nl))
	}

	if len(statics) > 0 {
		lines := make([]string, len(statics))
		for i, imp := range statics {
			lines[i] = "import static " + imp + ";"
		}

		sections = append(sections, strings.Join(lines, nl))
	}

	sections = append(sections, out.types...)
	sections = append(sections, out.footers...)

	b.Append(out.header)

	if len(sections) > 0 {
		b.Append(strings.Join(sections, nl+nl)).NL()
	}
}
