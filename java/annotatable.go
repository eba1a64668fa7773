package java

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rlch/jgen"
)

// Annotatable is an Element carrying annotations. Annotations are emitted in an order
// derived from their rendered text only: shorter first, then lexicographic.
type Annotatable[T any] struct {
	Element[T]

	annotations []*AnnotationGenerator
}

func newAnnotatable[T any](self T, name string) Annotatable[T] {
	return Annotatable[T]{Element: newElement(self, name)}
}

// WithAnnotation adds annotations.
func (a *Annotatable[T]) WithAnnotation(anns ...*AnnotationGenerator) T {
	for _, ann := range anns {
		if ann != nil {
			a.annotations = append(a.annotations, ann)
		}
	}

	return a.self
}

// Annotations returns the annotations in insertion order.
func (a *Annotatable[T]) Annotations() []*AnnotationGenerator {
	return slices.Clone(a.annotations)
}

// RemoveAnnotation removes the annotations whose type resolves to name, given either
// fully qualified or simple. It reports whether any was removed.
func (a *Annotatable[T]) RemoveAnnotation(ctx *jgen.Context, name string) bool {
	n := len(a.annotations)
	a.annotations = slices.DeleteFunc(a.annotations, func(ann *AnnotationGenerator) bool {
		resolved := ann.ResolvedName(ctx)

		return resolved == name || jgen.SimpleName(resolved) == name
	})

	return len(a.annotations) != n
}

func (a *Annotatable[T]) cloneAnnotatableFor(self T) Annotatable[T] {
	c := Annotatable[T]{Element: a.cloneFor(self)}
	for _, ann := range a.annotations {
		c.annotations = append(c.annotations, ann.clone())
	}

	return c
}

func (a *Annotatable[T]) prepareAnnotations(ctx *jgen.Context) error {
	prepared := make([]*AnnotationGenerator, 0, len(a.annotations))

	for _, ann := range a.annotations {
		ok, err := ann.admitted(ctx)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		p, err := ann.prepare(ctx)
		if err != nil {
			return err
		}

		prepared = append(prepared, p)
	}

	a.annotations = prepared

	return nil
}

// emitAnnotations renders every annotation first, then writes them in canonical
// order, each followed by a line delimiter, or by a space when inline.
func (a *Annotatable[T]) emitAnnotations(b *Builder, inline bool) error {
	texts := make([]string, 0, len(a.annotations))

	for _, ann := range a.annotations {
		sub := b.sub()
		if err := ann.emit(sub); err != nil {
			return err
		}

		if sub.Len() > 0 {
			texts = append(texts, sub.String())
		}
	}

	SortAnnotations(texts)

	for _, text := range texts {
		b.Append(text)

		if inline {
			b.Space()
		} else {
			b.NL()
		}
	}

	return nil
}

// SortAnnotations sorts rendered annotations by length, then lexicographically.
func SortAnnotations(texts []string) {
	slices.SortFunc(texts, func(x, y string) int {
		if lx, ly := utf8.RuneCountInString(x), utf8.RuneCountInString(y); lx != ly {
			return lx - ly
		}

		return strings.Compare(x, y)
	})
}
