package api

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rlch/jgen"
)

// When returns a function evaluating a boolean condition against the environment.
// An empty condition is constantly true.
//
// Conditions may call:
//
//	version(kind)             the version of kind, e.g. version("jaxws") == "2.2.10"
//	since(kind, constraint)   whether the version of kind satisfies constraint
//	supports(kind, feature)   whether the version of kind provides feature
//	symbol(kind, name)        the spelling of a symbol
//	has(kind)                 whether the environment supports kind at all
//	hasType(fqn)              whether the environment resolves a type
//
// A resolution error inside a call fails the whole condition instead of being read
// as false. Conditions are compiled without constant folding, so every call the
// evaluation reaches is made. The operators && and || still short-circuit: a call
// they skip cannot fail, which is what lets has(kind) guard a lookup, as in
// has("jaxws") && since("jaxws", ">= 3.0").
func When(condition string) *Func[bool] {
	if strings.TrimSpace(condition) == "" {
		return Const(true)
	}

	program, err := compileCondition(condition)

	return FromContext(func(ctx *jgen.Context) (bool, error) {
		if err != nil {
			return false, err
		}

		return runCondition(ctx, condition, program)
	})
}

// CheckCondition reports whether condition compiles.
func CheckCondition(condition string) error {
	if strings.TrimSpace(condition) == "" {
		return nil
	}

	_, err := compileCondition(condition)

	return err
}

func compileCondition(condition string) (*vm.Program, error) {
	program, err := expr.Compile(condition,
		expr.Env((&evaluation{}).env()),
		expr.AsBool(),
		expr.Optimize(false),
	)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidCondition, "%q: %v", condition, err)
	}

	return program, nil
}

func runCondition(ctx *jgen.Context, condition string, program *vm.Program) (bool, error) {
	e := &evaluation{ctx: ctx}

	output, err := expr.Run(program, e.env())

	// Errors raised by the functions take precedence: they explain why evaluation
	// could not continue.
	if e.err != nil {
		return false, errors.Wrapf(e.err, "evaluating condition %q", condition)
	}

	if err != nil {
		return false, errors.Wrapf(err, "evaluating condition %q", condition)
	}

	passed, ok := output.(bool)
	if !ok {
		return false, errors.Wrapf(ErrConditionNotBool, "%q returned %T", condition, output)
	}

	return passed, nil
}

// evaluation carries the context of one condition run and the first error raised by
// its functions.
type evaluation struct {
	ctx *jgen.Context
	err error
}

func (e *evaluation) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *evaluation) lookup(kind string) (jgen.API, bool) { //nolint:ireturn
	a, err := Lookup(e.ctx, kind)
	if err != nil {
		e.fail(err)

		return nil, false
	}

	return a, true
}

func (e *evaluation) environment() (jgen.Environment, bool) { //nolint:ireturn
	env := e.ctx.Environment()
	if env == nil {
		e.fail(jgen.ErrNoEnvironment)

		return nil, false
	}

	return env, true
}

func (e *evaluation) env() map[string]any {
	return map[string]any{
		"version": func(kind string) string {
			a, ok := e.lookup(kind)
			if !ok {
				return ""
			}

			return a.Version().String()
		},
		"since": func(kind, constraint string) bool {
			a, ok := e.lookup(kind)
			if !ok {
				return false
			}

			c, err := semver.NewConstraint(constraint)
			if err != nil {
				e.fail(errors.Wrapf(ErrInvalidConstraint, "%q: %v", constraint, err))

				return false
			}

			return c.Check(a.Version())
		},
		"supports": func(kind, feature string) bool {
			a, ok := e.lookup(kind)
			if !ok {
				return false
			}

			return a.Supports(feature)
		},
		"symbol": func(kind, name string) string {
			a, ok := e.lookup(kind)
			if !ok {
				return ""
			}

			s, ok := a.Symbol(name)
			if !ok {
				e.fail(errors.Wrapf(ErrUnknownSymbol, "%s.%s in version %s", kind, name, a.Version()))
			}

			return s
		},
		"has": func(kind string) bool {
			env, ok := e.environment()
			if !ok {
				return false
			}

			_, ok = env.API(kind)

			return ok
		},
		"hasType": func(fqn string) bool {
			env, ok := e.environment()
			if !ok {
				return false
			}

			_, ok = env.Type(fqn)

			return ok
		},
	}
}
