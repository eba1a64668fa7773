package java

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
)

// Kind is the kind of a type declaration.
type Kind int

// Type kinds.
const (
	Class Kind = iota
	Interface
	Enum
	Record
	AnnotationType
)

var kindKeywords = map[Kind]string{
	Class:          "class",
	Interface:      "interface",
	Enum:           "enum",
	Record:         "record",
	AnnotationType: "@interface",
}

// Keyword returns the declaring keyword.
func (k Kind) Keyword() string {
	return kindKeywords[k]
}

func (k Kind) String() string {
	return k.Keyword()
}

// ParseKind parses a declaring keyword. "annotation" is accepted for "@interface".
func ParseKind(s string) (Kind, error) {
	if s == "annotation" {
		return AnnotationType, nil
	}

	for k, kw := range kindKeywords {
		if kw == s {
			return k, nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
}

// EnumConstant is a constant of an enum type.
type EnumConstant struct {
	Name string
	Args []Expression
}

// TypeGenerator emits a class, interface, enum, record or annotation type.
// Fields, methods and nested types are emitted in that order, each group sorted by
// sort key.
type TypeGenerator struct {
	Annotatable[*TypeGenerator]

	kind       Kind
	modifiers  Modifiers
	typeParams []*TypeParameter
	superclass *api.Func[string]
	interfaces []*api.Func[string]
	constants  []*EnumConstant
	components []*MethodParameterGenerator
	fields     []member[*FieldGenerator]
	methods    []member[*MethodGenerator]
	types      []member[*TypeGenerator]
}

// Type creates a type declaration of kind.
func Type(kind Kind, name string) *TypeGenerator {
	t := &TypeGenerator{kind: kind}
	t.Annotatable = newAnnotatable(t, name)

	return t
}

// ClassDecl creates a class.
func ClassDecl(name string) *TypeGenerator {
	return Type(Class, name)
}

// InterfaceDecl creates an interface.
func InterfaceDecl(name string) *TypeGenerator {
	return Type(Interface, name)
}

// EnumDecl creates an enum.
func EnumDecl(name string) *TypeGenerator {
	return Type(Enum, name)
}

// RecordDecl creates a record.
func RecordDecl(name string) *TypeGenerator {
	return Type(Record, name)
}

// AnnotationTypeDecl creates an annotation type.
func AnnotationTypeDecl(name string) *TypeGenerator {
	return Type(AnnotationType, name)
}

// Kind returns the type kind.
func (t *TypeGenerator) Kind() Kind {
	return t.kind
}

// WithKind sets the type kind.
func (t *TypeGenerator) WithKind(k Kind) *TypeGenerator {
	t.kind = k

	return t
}

// WithModifiers replaces the modifiers.
func (t *TypeGenerator) WithModifiers(m Modifiers) *TypeGenerator {
	t.modifiers = m

	return t
}

// AddModifiers adds modifiers.
func (t *TypeGenerator) AddModifiers(m Modifiers) *TypeGenerator {
	t.modifiers |= m

	return t
}

// RemoveModifiers removes modifiers.
func (t *TypeGenerator) RemoveModifiers(m Modifiers) *TypeGenerator {
	t.modifiers &^= m

	return t
}

// Modifiers returns the modifiers.
func (t *TypeGenerator) Modifiers() Modifiers {
	return t.modifiers
}

// IsPublic reports whether the type is public.
func (t *TypeGenerator) IsPublic() bool {
	return t.modifiers.Has(Public)
}

// WithTypeParameters sets the type parameters.
func (t *TypeGenerator) WithTypeParameters(params ...*TypeParameter) *TypeGenerator {
	t.typeParams = params

	return t
}

// TypeParameters returns the type parameters.
func (t *TypeGenerator) TypeParameters() []*TypeParameter {
	return slices.Clone(t.typeParams)
}

// WithSuperclass sets the superclass reference. Only classes emit it.
func (t *TypeGenerator) WithSuperclass(ref string) *TypeGenerator {
	if ref == "" {
		t.superclass = nil

		return t
	}

	t.superclass = api.Const(ref)

	return t
}

// WithSuperclassFunc sets a superclass resolved against the environment.
func (t *TypeGenerator) WithSuperclassFunc(fn *api.Func[string]) *TypeGenerator {
	t.superclass = fn

	return t
}

// Superclass returns the superclass source, or nil.
func (t *TypeGenerator) Superclass() *api.Func[string] {
	return t.superclass
}

// WithInterface appends implemented (or, for interfaces, extended) interfaces.
func (t *TypeGenerator) WithInterface(refs ...string) *TypeGenerator {
	for _, ref := range refs {
		t.interfaces = append(t.interfaces, api.Const(ref))
	}

	return t
}

// WithInterfaceFunc appends an interface resolved against the environment.
func (t *TypeGenerator) WithInterfaceFunc(fn *api.Func[string]) *TypeGenerator {
	t.interfaces = append(t.interfaces, fn)

	return t
}

// Interfaces returns the interface sources.
func (t *TypeGenerator) Interfaces() []*api.Func[string] {
	return slices.Clone(t.interfaces)
}

// WithEnumConstant appends an enum constant.
func (t *TypeGenerator) WithEnumConstant(name string, args ...Expression) *TypeGenerator {
	t.constants = append(t.constants, &EnumConstant{Name: name, Args: args})

	return t
}

// EnumConstants returns the enum constants.
func (t *TypeGenerator) EnumConstants() []*EnumConstant {
	return slices.Clone(t.constants)
}

// WithComponent appends record components.
func (t *TypeGenerator) WithComponent(params ...*MethodParameterGenerator) *TypeGenerator {
	t.components = append(t.components, params...)

	return t
}

// Components returns the record components.
func (t *TypeGenerator) Components() []*MethodParameterGenerator {
	return slices.Clone(t.components)
}

// AddField adds a field keyed by its staticness and constant name.
func (t *TypeGenerator) AddField(f *FieldGenerator) *TypeGenerator {
	order := OrderField
	if f.modifiers.Has(Static) {
		order = OrderStaticField
	}

	name, _ := f.ElementName()

	return t.AddFieldWithKey(f, SortKey{Order: order, Name: name})
}

// AddFieldWithKey adds a field with an explicit sort key.
func (t *TypeGenerator) AddFieldWithKey(f *FieldGenerator, key SortKey) *TypeGenerator {
	f.setDeclaring(t)
	t.fields = append(t.fields, member[*FieldGenerator]{gen: f, key: key})

	return t
}

// Fields returns the fields in emission order.
func (t *TypeGenerator) Fields() []*FieldGenerator {
	return sorted(t.fields)
}

// RemoveField removes the fields named name and detaches them.
func (t *TypeGenerator) RemoveField(ctx *jgen.Context, name string) bool {
	return removeMembers(&t.fields, func(f *FieldGenerator) bool {
		if f.ResolvedName(ctx) != name {
			return false
		}

		f.setDeclaring(nil)

		return true
	})
}

// AddMethod adds a method keyed by its kind and constant name.
func (t *TypeGenerator) AddMethod(m *MethodGenerator) *TypeGenerator {
	order := OrderMethod

	switch {
	case m.constructor:
		order = OrderConstructor
	case m.modifiers.Has(Static):
		order = OrderStaticMethod
	}

	name, _ := m.ElementName()

	return t.AddMethodWithKey(m, SortKey{Order: order, Name: name})
}

// AddMethodWithKey adds a method with an explicit sort key.
func (t *TypeGenerator) AddMethodWithKey(m *MethodGenerator, key SortKey) *TypeGenerator {
	m.setDeclaring(t)
	t.methods = append(t.methods, member[*MethodGenerator]{gen: m, key: key})

	return t
}

// Methods returns the methods in emission order.
func (t *TypeGenerator) Methods() []*MethodGenerator {
	return sorted(t.methods)
}

// RemoveMethod removes every overload named name and detaches them.
func (t *TypeGenerator) RemoveMethod(ctx *jgen.Context, name string) bool {
	return removeMembers(&t.methods, func(m *MethodGenerator) bool {
		if m.constructor || m.ResolvedName(ctx) != name {
			return false
		}

		m.setDeclaring(nil)

		return true
	})
}

// AddType adds a nested type keyed by its constant name.
func (t *TypeGenerator) AddType(nested *TypeGenerator) *TypeGenerator {
	name, _ := nested.ElementName()

	return t.AddTypeWithKey(nested, SortKey{Order: OrderType, Name: name})
}

// AddTypeWithKey adds a nested type with an explicit sort key.
func (t *TypeGenerator) AddTypeWithKey(nested *TypeGenerator, key SortKey) *TypeGenerator {
	nested.setDeclaring(t)
	t.types = append(t.types, member[*TypeGenerator]{gen: nested, key: key})

	return t
}

// Types returns the nested types in emission order.
func (t *TypeGenerator) Types() []*TypeGenerator {
	return sorted(t.types)
}

// RemoveType removes the nested types named name and detaches them.
func (t *TypeGenerator) RemoveType(ctx *jgen.Context, name string) bool {
	return removeMembers(&t.types, func(nested *TypeGenerator) bool {
		if nested.ResolvedName(ctx) != name {
			return false
		}

		nested.setDeclaring(nil)

		return true
	})
}

// QualifiedName returns the fully qualified name, derived through the declaring
// generators. It implements Declaring.
func (t *TypeGenerator) QualifiedName(ctx *jgen.Context) string {
	name := t.ResolvedName(ctx)
	if t.declaring == nil {
		return name
	}

	prefix := t.declaring.QualifiedName(ctx)
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

// Generate implements Generator.
func (t *TypeGenerator) Generate(b *Builder) error {
	p, err := t.prepare(b.Context(), t.declaring)
	if err != nil {
		return err
	}

	return p.emit(b)
}

// clone duplicates the whole subtree, so pre-processors may edit any part of it.
func (t *TypeGenerator) clone() *TypeGenerator {
	c := *t
	c.Annotatable = t.cloneAnnotatableFor(&c)
	c.typeParams = cloneTypeParameters(t.typeParams)
	c.interfaces = slices.Clone(t.interfaces)
	c.constants = slices.Clone(t.constants)
	c.components = cloneParameters(t.components)
	c.fields = cloneMembers(t.fields, (*FieldGenerator).clone)
	c.methods = cloneMembers(t.methods, (*MethodGenerator).clone)
	c.types = cloneMembers(t.types, (*TypeGenerator).clone)

	for _, f := range c.fields {
		f.gen.setDeclaring(&c)
	}

	for _, m := range c.methods {
		m.gen.setDeclaring(&c)
	}

	for _, nested := range c.types {
		nested.gen.setDeclaring(&c)
	}

	return &c
}

// prepare returns a copy with pre-processors applied, declared by parent.
func (t *TypeGenerator) prepare(ctx *jgen.Context, parent Declaring) (*TypeGenerator, error) {
	return t.clone().process(ctx, parent)
}

// process applies the pre-processors of a cloned subtree in place. Members are
// processed after the type's own pre-processors ran, so those may add or remove them.
func (t *TypeGenerator) process(ctx *jgen.Context, parent Declaring) (*TypeGenerator, error) {
	t.declaring = parent

	if err := t.preProcess(ctx); err != nil {
		return nil, err
	}

	if err := t.prepareAnnotations(ctx); err != nil {
		return nil, err
	}

	var err error

	if t.components, err = prepareParameters(ctx, t.components); err != nil {
		return nil, err
	}

	t.fields, err = prepareMembers(ctx, t.fields, func(f *FieldGenerator) (*FieldGenerator, error) {
		return f.prepare(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	t.methods, err = prepareMembers(ctx, t.methods, func(m *MethodGenerator) (*MethodGenerator, error) {
		return m.prepare(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	t.types, err = prepareMembers(ctx, t.types, func(nested *TypeGenerator) (*TypeGenerator, error) {
		return nested.process(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// supertypes resolves the superclass and interfaces. Only classes have a superclass.
func (t *TypeGenerator) supertypes(ctx *jgen.Context) (string, []string, error) {
	var superclass string

	if t.superclass != nil && t.kind == Class {
		s, err := t.superclass.Eval(ctx)
		if err != nil {
			return "", nil, errors.Wrap(err, "resolving superclass")
		}

		superclass = s
	}

	interfaces := make([]string, 0, len(t.interfaces))

	for _, fn := range t.interfaces {
		s, err := fn.Eval(ctx)
		if err != nil {
			return "", nil, errors.Wrap(err, "resolving interface")
		}

		if s != "" {
			interfaces = append(interfaces, s)
		}
	}

	return superclass, interfaces, nil
}

func (t *TypeGenerator) emit(b *Builder) error {
	ctx := b.Context()

	name, err := t.requireName(ctx, "type")
	if err != nil {
		return err
	}

	superclass, interfaces, err := t.supertypes(ctx)
	if err != nil {
		return errors.Wrapf(err, "type %s", name)
	}

	if err := t.emitComment(b); err != nil {
		return err
	}

	if err := t.emitAnnotations(b, false); err != nil {
		return err
	}

	t.modifiers.emit(b)
	b.Append(t.kind.Keyword()).Space().Append(name)

	if exit := enterTypeVariables(ctx, t.typeParams); exit != nil {
		defer exit()
	}

	emitTypeParameters(b, t.typeParams)

	if t.kind == Record {
		if err := emitParameters(b, t.components); err != nil {
			return err
		}
	}

	if superclass != "" {
		b.Append(" extends ")
		b.Ref(superclass)
	}

	if len(interfaces) > 0 && t.kind != AnnotationType {
		if t.kind == Interface {
			b.Append(" extends ")
		} else {
			b.Append(" implements ")
		}

		for i, iface := range interfaces {
			if i > 0 {
				b.Comma()
			}

			b.Ref(iface)
		}
	}

	b.Space().BlockStart().NL()

	if r := ctx.Resolver(); r != nil {
		r.EnterType(t.QualifiedName(ctx))
		defer r.ExitType()
	}

	if err := t.emitBody(b); err != nil {
		return err
	}

	b.BlockEnd()

	return nil
}

// emitBody writes the members separated by blank lines, the last one followed by a
// line delimiter.
func (t *TypeGenerator) emitBody(b *Builder) error {
	var chunks []func() error

	hasMembers := len(t.fields)+len(t.methods)+len(t.types) > 0
	if t.kind == Enum && (len(t.constants) > 0 || hasMembers) {
		chunks = append(chunks, func() error { return t.emitConstants(b) })
	}

	for _, f := range sorted(t.fields) {
		chunks = append(chunks, func() error { return f.emit(b) })
	}

	for _, m := range sorted(t.methods) {
		chunks = append(chunks, func() error { return m.emit(b) })
	}

	for _, nested := range sorted(t.types) {
		chunks = append(chunks, func() error { return nested.emit(b) })
	}

	for i, chunk := range chunks {
		if i > 0 {
			b.NL().NL()
		}

		if err := chunk(); err != nil {
			return err
		}
	}

	if len(chunks) > 0 {
		b.NL()
	}

	return nil
}

func (t *TypeGenerator) emitConstants(b *Builder) error {
	for i, c := range t.constants {
		if i > 0 {
			b.Comma()
		}

		b.Append(c.Name)

		if len(c.Args) > 0 {
			b.ParenOpen()

			if err := emitExpressions(b, c.Args); err != nil {
				return err
			}

			b.ParenClose()
		}
	}

	b.Semicolon()

	return nil
}

// cloneMembers copies the member list and each member generator with clone.
func cloneMembers[T any](ms []member[T], clone func(T) T) []member[T] {
	if ms == nil {
		return nil
	}

	out := make([]member[T], len(ms))
	for i, m := range ms {
		out[i] = member[T]{gen: clone(m.gen), key: m.key}
	}

	return out
}

func removeMembers[T any](ms *[]member[T], match func(T) bool) bool {
	n := len(*ms)
	*ms = slices.DeleteFunc(*ms, func(m member[T]) bool {
		return match(m.gen)
	})

	return len(*ms) != n
}
