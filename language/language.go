// Package language provides the registry of target languages.
//
// Each target language implements the Language interface to render descriptor
// units into source files.
package language

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/rlch/jgen"
	"github.com/rlch/jgen/model"
	"github.com/rlch/jgen/output"
	"github.com/rlch/jgen/transform"
)

// Language represents a target language for code generation.
type Language interface {
	// Name returns the language identifier (e.g., "java").
	Name() string

	// Generate renders the units of the context into files.
	Generate(ctx *GenerateContext) ([]*output.File, error)
}

// GenerateContext provides information needed for code generation.
type GenerateContext struct {
	// Units are the descriptor units to render.
	Units []*model.Unit

	// Environment is the snapshot API symbols and guards are resolved against.
	// May be nil.
	Environment jgen.Environment

	// Transformer intercepts the model conversion. May be nil.
	Transformer transform.Transformer

	// LineDelimiter overrides jgen.DefaultLineDelimiter when non-empty.
	LineDelimiter string

	// Properties are copied into every generation context.
	Properties map[string]string

	// Logger receives structural-misuse warnings. May be nil.
	Logger *zap.Logger
}

// Options returns the jgen context options described by ctx.
func (ctx *GenerateContext) Options() []jgen.Option {
	opts := []jgen.Option{
		jgen.WithLineDelimiter(ctx.LineDelimiter),
		jgen.WithLogger(ctx.Logger),
	}

	if ctx.Environment != nil {
		opts = append(opts, jgen.WithEnvironment(ctx.Environment))
	}

	keys := make([]string, 0, len(ctx.Properties))
	for k := range ctx.Properties {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		opts = append(opts, jgen.WithProperty(k, ctx.Properties[k]))
	}

	return opts
}

// Registration for language discovery.
var (
	mu        sync.RWMutex
	languages = make(map[string]Language)
)

// Register registers a language by name.
func Register(lang Language) {
	mu.Lock()
	defer mu.Unlock()

	languages[lang.Name()] = lang
}

// Get returns a language by name, or nil if not registered.
func Get(name string) Language { //nolint:ireturn
	mu.RLock()
	defer mu.RUnlock()

	return languages[name]
}

// RegisteredLanguages returns the names of all registered languages, sorted.
func RegisteredLanguages() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
