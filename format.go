package jgen

import "strings"

// Format renders the reference back to source, spelling every type name through
// resolve. A nil resolve keeps names as written. Spacing is normalized: type
// arguments are separated by ", " and wildcard bounds by single spaces.
func (r *Reference) Format(resolve func(name string) string) string {
	var b strings.Builder

	f := &formatter{b: &b, resolve: resolve}
	f.formatReference(r)

	return b.String()
}

type formatter struct {
	b       *strings.Builder
	resolve func(string) string
}

func (f *formatter) write(s string) {
	f.b.WriteString(s)
}

func (f *formatter) formatReference(r *Reference) {
	switch {
	case r.Wildcard != nil:
		f.formatWildcard(r.Wildcard)
	case r.Type != nil:
		f.formatTypeName(r.Type)
	}
}

func (f *formatter) formatWildcard(w *Wildcard) {
	f.write("?")

	if w.Bound != "" && w.Type != nil {
		f.write(" " + w.Bound + " ")
		f.formatReference(w.Type)
	}
}

func (f *formatter) formatTypeName(t *TypeName) {
	name := t.Name()
	if f.resolve != nil {
		name = f.resolve(name)
	}

	f.write(name)

	if t.Generic {
		f.write("<")

		for i, arg := range t.Args {
			if i > 0 {
				f.write(", ")
			}

			f.formatReference(arg)
		}

		f.write(">")
	}

	for range t.Dims {
		f.write("[]")
	}

	if t.Varargs {
		f.write("...")
	}
}
