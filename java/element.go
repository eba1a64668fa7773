package java

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/api"
)

// PreProcessor adjusts a prepared copy of a generator immediately before it is
// emitted. It runs on every generation, on a fresh copy each time.
type PreProcessor[T any] func(self T, ctx *jgen.Context) error

// Declaring is the generator declaring an element: a type for members, a
// compilation unit for top-level types.
type Declaring interface {
	// QualifiedName returns the name members are qualified with.
	QualifiedName(ctx *jgen.Context) string
}

// Element holds what every named Java element has: a name that may depend on the
// environment, an optional comment, pre-processors and a non-owning back-reference
// to its declaring generator.
type Element[T any] struct {
	self          T
	name          *api.Func[string]
	comment       Generator
	preProcessors []PreProcessor[T]
	guard         *api.Func[bool]
	declaring     Declaring
}

func newElement[T any](self T, name string) Element[T] {
	e := Element[T]{self: self}
	if name != "" {
		e.name = api.Const(name)
	}

	return e
}

// WithName sets a constant name.
func (e *Element[T]) WithName(name string) T {
	e.name = api.Const(name)

	return e.self
}

// WithNameFunc sets a name resolved against the environment.
func (e *Element[T]) WithNameFunc(fn *api.Func[string]) T {
	e.name = fn

	return e.self
}

// WithComment sets the comment generator. Comments end with a line delimiter.
func (e *Element[T]) WithComment(g Generator) T {
	e.comment = g

	return e.self
}

// WithPreProcessor appends a pre-processor.
func (e *Element[T]) WithPreProcessor(p PreProcessor[T]) T {
	e.preProcessors = append(e.preProcessors, p)

	return e.self
}

// WithGuard makes the element conditional: the declaring generator leaves it out of
// a generation when guard evaluates to false.
func (e *Element[T]) WithGuard(guard *api.Func[bool]) T {
	e.guard = guard

	return e.self
}

// Guard returns the guard, or nil.
func (e *Element[T]) Guard() *api.Func[bool] {
	return e.guard
}

// NameFunc returns the name source, or nil.
func (e *Element[T]) NameFunc() *api.Func[string] {
	return e.name
}

// ElementName returns the name if it is a constant.
func (e *Element[T]) ElementName() (string, bool) {
	if e.name == nil {
		return "", false
	}

	v, ok := e.name.Constant()
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}

	return v, true
}

// ResolvedName resolves the name against ctx. It returns "" when the name is unset,
// blank or cannot be resolved.
func (e *Element[T]) ResolvedName(ctx *jgen.Context) string {
	if e.name == nil {
		return ""
	}

	v, err := e.name.Eval(ctx)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(v)
}

// Comment returns the comment generator, or nil.
func (e *Element[T]) Comment() Generator { //nolint:ireturn
	return e.comment
}

// PreProcessors returns the registered pre-processors.
func (e *Element[T]) PreProcessors() []PreProcessor[T] {
	return slices.Clone(e.preProcessors)
}

// DeclaringGenerator returns the declaring generator, or nil when detached.
func (e *Element[T]) DeclaringGenerator() Declaring { //nolint:ireturn
	return e.declaring
}

func (e *Element[T]) setDeclaring(d Declaring) {
	e.declaring = d
}

// requireName resolves a mandatory name. Resolution errors propagate.
func (e *Element[T]) requireName(ctx *jgen.Context, what string) (string, error) {
	if e.name == nil {
		return "", errors.Wrapf(jgen.ErrMissingElementName, "%s", what)
	}

	v, err := e.name.Eval(ctx)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s name", what)
	}

	v = strings.TrimSpace(v)
	if v == "" {
		return "", errors.Wrapf(jgen.ErrMissingElementName, "%s", what)
	}

	return v, nil
}

// admitted evaluates the guard. Unguarded elements are always admitted.
func (e *Element[T]) admitted(ctx *jgen.Context) (bool, error) {
	if e.guard == nil {
		return true, nil
	}

	ok, err := e.guard.Eval(ctx)
	if err != nil {
		return false, errors.Wrap(err, "evaluating guard")
	}

	return ok, nil
}

type guarded interface {
	admitted(ctx *jgen.Context) (bool, error)
}

// prepareMembers prepares the admitted members, dropping the others.
func prepareMembers[T guarded](ctx *jgen.Context, ms []member[T], prepare func(T) (T, error)) ([]member[T], error) {
	out := make([]member[T], 0, len(ms))

	for _, m := range ms {
		ok, err := m.gen.admitted(ctx)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		p, err := prepare(m.gen)
		if err != nil {
			return nil, err
		}

		out = append(out, member[T]{gen: p, key: m.key})
	}

	return out, nil
}

func (e *Element[T]) cloneFor(self T) Element[T] {
	c := *e
	c.self = self
	c.preProcessors = slices.Clone(e.preProcessors)

	return c
}

// preProcess runs the pre-processors registered when preparation started.
func (e *Element[T]) preProcess(ctx *jgen.Context) error {
	for _, p := range slices.Clone(e.preProcessors) {
		if err := p(e.self, ctx); err != nil {
			return err
		}
	}

	return nil
}

func (e *Element[T]) emitComment(b *Builder) error {
	if e.comment == nil {
		return nil
	}

	return e.comment.Generate(b)
}
