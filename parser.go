package jgen

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
)

// refLexer is the custom lexer for type references.
var refLexer = newRefLexer()

var parser = participle.MustBuild[Reference](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

const referenceCacheSize = 4096

// references caches parsed references. Parsed values are never mutated.
var references = mustCache()

func mustCache() *lru.Cache[string, *Reference] {
	c, err := lru.New[string, *Reference](referenceCacheSize)
	if err != nil {
		panic(err)
	}

	return c
}

// ParseReference parses a type reference. The result is shared and must not be
// modified. This function is thread-safe.
func ParseReference(s string) (*Reference, error) {
	key := strings.TrimSpace(s)
	if key == "" {
		return nil, errors.Wrap(ErrInvalidReference, "empty reference")
	}

	if ref, ok := references.Get(key); ok {
		return ref, nil
	}

	ref, err := parser.ParseString("", key)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidReference, "%q: %v", key, err)
	}

	references.Add(key, ref)

	return ref, nil
}

// MustParseReference is like ParseReference but panics on error.
func MustParseReference(s string) *Reference {
	ref, err := ParseReference(s)
	if err != nil {
		panic(err)
	}

	return ref
}

// ExportedLexer returns the lexer definition for testing purposes.
//
//nolint:revive // unexported-return: intentionally returns unexported type for internal test use
func ExportedLexer() *refDefinition {
	return refLexer
}
