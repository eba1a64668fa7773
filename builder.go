package jgen

import (
	"strings"
)

// Builder is an append-only source buffer bound to a Context.
//
// None of its operations validate structure: emitting balanced braces and legal
// token sequences is the caller's job.
type Builder struct {
	ctx *Context
	buf strings.Builder
}

// NewBuilder creates an empty builder for ctx.
func NewBuilder(ctx *Context) *Builder {
	return &Builder{ctx: ctx}
}

// Context returns the owning context.
func (b *Builder) Context() *Context {
	return b.ctx
}

// Append writes raw text.
func (b *Builder) Append(s string) *Builder {
	b.buf.WriteString(s)

	return b
}

// AppendRune writes a single character.
func (b *Builder) AppendRune(r rune) *Builder {
	b.buf.WriteRune(r)

	return b
}

// NL writes the context's line delimiter.
func (b *Builder) NL() *Builder {
	return b.Append(b.ctx.LineDelimiter())
}

// Space writes a single space.
func (b *Builder) Space() *Builder {
	return b.AppendRune(' ')
}

// Dot writes ".".
func (b *Builder) Dot() *Builder {
	return b.AppendRune('.')
}

// Comma writes ", ".
func (b *Builder) Comma() *Builder {
	return b.Append(", ")
}

// Semicolon writes ";".
func (b *Builder) Semicolon() *Builder {
	return b.AppendRune(';')
}

// EqualSign writes " = ".
func (b *Builder) EqualSign() *Builder {
	return b.Append(" = ")
}

// BlockStart writes "{".
func (b *Builder) BlockStart() *Builder {
	return b.AppendRune('{')
}

// BlockEnd writes "}".
func (b *Builder) BlockEnd() *Builder {
	return b.AppendRune('}')
}

// ParenOpen writes "(".
func (b *Builder) ParenOpen() *Builder {
	return b.AppendRune('(')
}

// ParenClose writes ")".
func (b *Builder) ParenClose() *Builder {
	return b.AppendRune(')')
}

// Join writes parts separated by sep.
func (b *Builder) Join(parts []string, sep string) *Builder {
	return b.Append(strings.Join(parts, sep))
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// String returns the text written so far.
func (b *Builder) String() string {
	return b.buf.String()
}
