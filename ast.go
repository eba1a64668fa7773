package jgen

import "strings"

// Reference is a parsed type reference such as
// "java.util.Map<java.lang.String, ? extends java.util.List<foo.Bar[]>>".
type Reference struct {
	Wildcard *Wildcard `parser:"  @@"`
	Type     *TypeName `parser:"| @@"`
}

// Wildcard is a "?" type argument with an optional bound.
type Wildcard struct {
	Bound string     `parser:"'?' ( @( 'extends' | 'super' )"`
	Type  *Reference `parser:"  @@ )?"`
}

// TypeName is a possibly qualified, possibly generic type name with array dimensions.
type TypeName struct {
	Parts   []string     `parser:"@Ident ( '.' @Ident )*"`
	Generic bool         `parser:"( @'<'"`
	Args    []*Reference `parser:"  ( @@ ( ',' @@ )* )? '>' )?"`
	Dims    []string     `parser:"( @'[' ']' )*"`
	Varargs bool         `parser:"@'...'?"`
}

// Name returns the dotted name without type arguments or dimensions.
func (t *TypeName) Name() string {
	return strings.Join(t.Parts, ".")
}

// Erasure returns the name of the outermost type, or "" for a wildcard.
func (r *Reference) Erasure() string {
	if r.Type == nil {
		return ""
	}

	return r.Type.Name()
}

// Names returns every type name mentioned in the reference, depth first.
func (r *Reference) Names() []string {
	var names []string

	r.walk(func(t *TypeName) {
		names = append(names, t.Name())
	})

	return names
}

func (r *Reference) walk(fn func(*TypeName)) {
	switch {
	case r.Wildcard != nil:
		if r.Wildcard.Type != nil {
			r.Wildcard.Type.walk(fn)
		}
	case r.Type != nil:
		fn(r.Type)

		for _, arg := range r.Type.Args {
			arg.walk(fn)
		}
	}
}

// SimpleName returns the last segment of a dotted name.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

// Qualifier returns everything before the last segment of a dotted name.
func Qualifier(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}

	return ""
}
