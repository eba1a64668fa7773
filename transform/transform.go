// Package transform converts descriptor models into Java generators.
//
// The conversion calls a Transformer once per element. Each hook receives the model
// element and can request the default conversion lazily; it returns the default, a
// modified default, a replacement, or nil to drop the element. Hooks that never
// request the default never pay for converting the element's children.
//
// Embed Default to override single kinds:
//
//	type noDeprecated struct{ transform.Default }
//
//	func (noDeprecated) Annotation(in *transform.Input[*model.Annotation, *java.AnnotationGenerator]) (*java.AnnotationGenerator, error) {
//		if in.Model().Type == "java.lang.Deprecated" {
//			return nil, nil
//		}
//
//		return in.RequestDefault()
//	}
package transform

import (
	"sync"

	"github.com/rlch/jgen/java"
	"github.com/rlch/jgen/model"
)

// Input is what a hook receives: the model element and its lazily converted default.
type Input[M, G any] struct {
	model M
	conv  func() (G, error)

	once sync.Once
	gen  G
	err  error
}

func newInput[M, G any](m M, conv func() (G, error)) *Input[M, G] {
	return &Input[M, G]{model: m, conv: conv}
}

// Model returns the model element.
func (in *Input[M, G]) Model() M {
	return in.model
}

// RequestDefault converts the element verbatim on first use and returns the result.
// Children are converted through the same transformer.
func (in *Input[M, G]) RequestDefault() (G, error) {
	in.once.Do(func() {
		in.gen, in.err = in.conv()
	})

	return in.gen, in.err
}

// Transformer intercepts the conversion of each element kind. Returning a nil
// generator (or "" for packages, imports and static imports) removes the element.
type Transformer interface {
	Unit(in *Input[*model.Unit, *java.CompilationUnitGenerator]) (*java.CompilationUnitGenerator, error)
	Package(in *Input[string, string]) (string, error)
	Import(in *Input[string, string]) (string, error)
	StaticImport(in *Input[string, string]) (string, error)
	Type(in *Input[*model.Type, *java.TypeGenerator]) (*java.TypeGenerator, error)
	Field(in *Input[*model.Field, *java.FieldGenerator]) (*java.FieldGenerator, error)
	Method(in *Input[*model.Method, *java.MethodGenerator]) (*java.MethodGenerator, error)
	Parameter(in *Input[*model.Parameter, *java.MethodParameterGenerator]) (*java.MethodParameterGenerator, error)
	Annotation(in *Input[*model.Annotation, *java.AnnotationGenerator]) (*java.AnnotationGenerator, error)
}

// Default requests the default conversion for every kind.
type Default struct{}

var _ Transformer = Default{}

// Unit implements Transformer.
func (Default) Unit(in *Input[*model.Unit, *java.CompilationUnitGenerator]) (*java.CompilationUnitGenerator, error) {
	return in.RequestDefault()
}

// Package implements Transformer.
func (Default) Package(in *Input[string, string]) (string, error) {
	return in.RequestDefault()
}

// Import implements Transformer.
func (Default) Import(in *Input[string, string]) (string, error) {
	return in.RequestDefault()
}

// StaticImport implements Transformer.
func (Default) StaticImport(in *Input[string, string]) (string, error) {
	return in.RequestDefault()
}

// Type implements Transformer.
func (Default) Type(in *Input[*model.Type, *java.TypeGenerator]) (*java.TypeGenerator, error) {
	return in.RequestDefault()
}

// Field implements Transformer.
func (Default) Field(in *Input[*model.Field, *java.FieldGenerator]) (*java.FieldGenerator, error) {
	return in.RequestDefault()
}

// Method implements Transformer.
func (Default) Method(in *Input[*model.Method, *java.MethodGenerator]) (*java.MethodGenerator, error) {
	return in.RequestDefault()
}

// Parameter implements Transformer.
func (Default) Parameter(in *Input[*model.Parameter, *java.MethodParameterGenerator]) (*java.MethodParameterGenerator, error) {
	return in.RequestDefault()
}

// Annotation implements Transformer.
func (Default) Annotation(in *Input[*model.Annotation, *java.AnnotationGenerator]) (*java.AnnotationGenerator, error) {
	return in.RequestDefault()
}
