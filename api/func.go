// Package api provides API-Version Functions: values that are either constant or
// resolved against the environment bound to a generation context.
//
// A deferred function is evaluated at most once per run. Its value is memoized in the
// context and dropped when the next run begins, so the same generator tree yields
// different source against different environments:
//
//	name := api.Symbol("jaxws", "WebService")
//	fqn, err := name.Eval(ctx) // "javax.jws.WebService" or "jakarta.jws.WebService"
//
// Evaluating a deferred function without an environment, or against one that does
// not support its API kind, fails. Constant functions never fail.
package api

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/rlch/jgen"
)

// Func is a constant value or a deferred computation against a context's environment.
type Func[T any] struct {
	kind     string
	resolve  func(ctx *jgen.Context) (T, error)
	value    T
	constant bool
}

// Const returns a function that always yields v and needs no context.
func Const[T any](v T) *Func[T] {
	return &Func[T]{value: v, constant: true}
}

// New returns a function extracting a value from the environment's API of kind.
func New[T any](kind string, extract func(jgen.API) (T, error)) *Func[T] {
	return &Func[T]{
		kind: kind,
		resolve: func(ctx *jgen.Context) (T, error) {
			var zero T

			a, err := Lookup(ctx, kind)
			if err != nil {
				return zero, err
			}

			v, err := extract(a)
			if err != nil {
				return zero, errors.Wrapf(err, "evaluating %s api function", kind)
			}

			return v, nil
		},
	}
}

// FromContext returns a function computed from the whole context. It is used for
// functions depending on more than one API kind.
func FromContext[T any](fn func(ctx *jgen.Context) (T, error)) *Func[T] {
	return &Func[T]{resolve: fn}
}

// Lookup returns the API of kind from the environment bound to ctx.
func Lookup(ctx *jgen.Context, kind string) (jgen.API, error) { //nolint:ireturn
	env := ctx.Environment()
	if env == nil {
		return nil, errors.Wrapf(jgen.ErrNoEnvironment, "resolving %s api", kind)
	}

	a, ok := env.API(kind)
	if !ok {
		return nil, errors.WithHintf(
			errors.Wrapf(jgen.ErrUnsupportedAPI, "%s", kind),
			"declare a %s dependency covered by an api definition in the environment snapshot", kind,
		)
	}

	return a, nil
}

// IsConstant reports whether f needs no context.
func (f *Func[T]) IsConstant() bool {
	return f.constant
}

// Constant returns the value of a constant function.
func (f *Func[T]) Constant() (T, bool) {
	return f.value, f.constant
}

// Kind returns the API kind a deferred function resolves, or "".
func (f *Func[T]) Kind() string {
	return f.kind
}

// Eval returns the function's value for the current run of ctx. Errors are memoized
// with the value and returned on every evaluation within the run.
func (f *Func[T]) Eval(ctx *jgen.Context) (T, error) {
	if f.constant {
		return f.value, nil
	}

	var zero T

	if f.resolve == nil {
		return zero, nil
	}

	v, err := ctx.Memo(f, func() (any, error) {
		return f.resolve(ctx)
	})
	if err != nil {
		return zero, err
	}

	t, _ := v.(T)

	return t, nil
}

func (f *Func[T]) String() string {
	if f.constant {
		return fmt.Sprintf("const(%v)", f.value)
	}

	if f.kind != "" {
		return "api(" + f.kind + ")"
	}

	return "api"
}

// Symbol returns a function yielding the spelling of a logical symbol of kind.
func Symbol(kind, name string) *Func[string] {
	return New(kind, func(a jgen.API) (string, error) {
		s, ok := a.Symbol(name)
		if !ok {
			return "", errors.Wrapf(ErrUnknownSymbol, "%s.%s in version %s", kind, name, a.Version())
		}

		return s, nil
	})
}

// Supports returns a function reporting whether the environment's version of kind
// provides feature.
func Supports(kind, feature string) *Func[bool] {
	return New(kind, func(a jgen.API) (bool, error) {
		return a.Supports(feature), nil
	})
}

// Version returns a function yielding the environment's version of kind.
func Version(kind string) *Func[*semver.Version] {
	return New(kind, func(a jgen.API) (*semver.Version, error) {
		return a.Version(), nil
	})
}

// Since returns a function yielding then when the environment's version of kind
// satisfies constraint, and otherwise when it does not.
func Since[T any](kind, constraint string, then, otherwise T) *Func[T] {
	c, err := semver.NewConstraint(constraint)

	return New(kind, func(a jgen.API) (T, error) {
		if err != nil {
			var zero T

			return zero, errors.Wrapf(ErrInvalidConstraint, "%q: %v", constraint, err)
		}

		if c.Check(a.Version()) {
			return then, nil
		}

		return otherwise, nil
	})
}

// Map returns a function applying fn to the value of f. Constants stay constant.
func Map[T, U any](f *Func[T], fn func(T) U) *Func[U] {
	if f.constant {
		return Const(fn(f.value))
	}

	return &Func[U]{
		kind: f.kind,
		resolve: func(ctx *jgen.Context) (U, error) {
			var zero U

			v, err := f.Eval(ctx)
			if err != nil {
				return zero, err
			}

			return fn(v), nil
		},
	}
}
