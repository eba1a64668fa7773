package jgen

import (
	"go.uber.org/zap"
)

// DefaultLineDelimiter is used when no delimiter is configured.
const DefaultLineDelimiter = "\n"

// ReferenceResolver decides how a type reference is spelled in the output.
// The active resolver is installed on a Context for the duration of a
// compilation-unit run.
type ReferenceResolver interface {
	// Ref returns the spelling for a (possibly generic) type reference.
	Ref(reference string) string

	// RefStatic returns the spelling for a static member "pkg.Type.member".
	RefStatic(member string) string

	// EnterType marks the start of a type body with the given fully qualified name.
	EnterType(fqn string)

	// ExitType marks the end of the innermost type body.
	ExitType()

	// EnterTypeVariables declares the type parameters of a class or method.
	EnterTypeVariables(names ...string)

	// ExitTypeVariables ends the innermost type parameter declaration.
	ExitTypeVariables()
}

// Context is the per-run state shared by all generators of one generation run.
// It is not safe for concurrent use.
type Context struct {
	lineDelimiter string
	properties    *Properties
	env           Environment
	logger        *zap.Logger
	resolver      ReferenceResolver
	memo          map[any]memoEntry
}

type memoEntry struct {
	value any
	err   error
}

// Option configures a Context.
type Option func(*Context)

// WithLineDelimiter sets the delimiter used for every newline the engine inserts.
func WithLineDelimiter(delim string) Option {
	return func(c *Context) {
		if delim != "" {
			c.lineDelimiter = delim
		}
	}
}

// WithEnvironment binds an environment snapshot.
func WithEnvironment(env Environment) Option {
	return func(c *Context) {
		c.env = env
	}
}

// WithLogger sets the logger for structural-misuse warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Context) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProperty sets a property in the context's property bag.
func WithProperty(key string, value any) Option {
	return func(c *Context) {
		c.properties.Set(key, value)
	}
}

// NewContext creates a context for a generation run.
func NewContext(opts ...Option) *Context {
	c := &Context{
		lineDelimiter: DefaultLineDelimiter,
		properties:    NewProperties(),
		logger:        zap.NewNop(),
		memo:          make(map[any]memoEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LineDelimiter returns the configured line delimiter.
func (c *Context) LineDelimiter() string {
	return c.lineDelimiter
}

// Properties returns the property bag.
func (c *Context) Properties() *Properties {
	return c.properties
}

// Environment returns the bound environment, or nil.
func (c *Context) Environment() Environment { //nolint:ireturn
	return c.env
}

// Logger returns the context logger. Never nil.
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// Resolver returns the active reference resolver, or nil outside a compilation unit.
func (c *Context) Resolver() ReferenceResolver { //nolint:ireturn
	return c.resolver
}

// UseResolver installs r as the active resolver and returns a function restoring
// the previous one.
func (c *Context) UseResolver(r ReferenceResolver) func() {
	prev := c.resolver
	c.resolver = r

	return func() {
		c.resolver = prev
	}
}

// Ref spells a type reference through the active resolver. Without a resolver the
// reference is normalized but left fully qualified.
func (c *Context) Ref(reference string) string {
	if c.resolver != nil {
		return c.resolver.Ref(reference)
	}

	ref, err := ParseReference(reference)
	if err != nil {
		c.logger.Warn("emitting malformed reference verbatim",
			zap.String("reference", reference), zap.Error(err))

		return reference
	}

	return ref.Format(nil)
}

// RefStatic spells a static member reference through the active resolver.
func (c *Context) RefStatic(member string) string {
	if c.resolver != nil {
		return c.resolver.RefStatic(member)
	}

	return member
}

// BeginRun starts a new generation run: values memoized by a previous run are dropped.
func (c *Context) BeginRun() {
	c.memo = make(map[any]memoEntry)
}

// Memo returns the value computed for key during the current run, computing it with
// fn on first use. Errors are memoized as well.
func (c *Context) Memo(key any, fn func() (any, error)) (any, error) {
	if e, ok := c.memo[key]; ok {
		return e.value, e.err
	}

	v, err := fn()
	c.memo[key] = memoEntry{value: v, err: err}

	return v, err
}
