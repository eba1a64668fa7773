package java

import "github.com/rlch/jgen"

// TypeParameter is a generic type parameter such as "T extends Comparable<T>".
type TypeParameter struct {
	Name   string
	Bounds []string
}

// TypeParam creates a type parameter with optional bounds.
func TypeParam(name string, bounds ...string) *TypeParameter {
	return &TypeParameter{Name: name, Bounds: bounds}
}

func emitTypeParameters(b *Builder, params []*TypeParameter) {
	if len(params) == 0 {
		return
	}

	b.AppendRune('<')

	for i, p := range params {
		if i > 0 {
			b.Comma()
		}

		b.Append(p.Name)

		for j, bound := range p.Bounds {
			if j == 0 {
				b.Append(" extends ")
			} else {
				b.Append(" & ")
			}

			b.Ref(bound)
		}
	}

	b.AppendRune('>')
}

// enterTypeVariables declares params to the run's resolver and returns the function
// ending their scope, or nil when there is nothing to declare.
func enterTypeVariables(ctx *jgen.Context, params []*TypeParameter) func() {
	r := ctx.Resolver()
	if r == nil || len(params) == 0 {
		return nil
	}

	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}

	r.EnterTypeVariables(names...)

	return r.ExitTypeVariables
}

func cloneTypeParameters(params []*TypeParameter) []*TypeParameter {
	if params == nil {
		return nil
	}

	out := make([]*TypeParameter, len(params))
	for i, p := range params {
		c := *p
		c.Bounds = append([]string(nil), p.Bounds...)
		out[i] = &c
	}

	return out
}
