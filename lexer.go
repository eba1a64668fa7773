package jgen

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"
)

// Token type constants - negative values as per participle convention.
const (
	TokenEOF        lexer.TokenType = lexer.EOF
	TokenIdent      lexer.TokenType = -(iota + 2) //nolint:mnd // participle convention
	TokenDot                                      // .
	TokenComma                                    // ,
	TokenLt                                       // <
	TokenGt                                       // >
	TokenQuestion                                 // ?
	TokenLBracket                                 // [
	TokenRBracket                                 // ]
	TokenEllipsis                                 // ...
	TokenWhitespace                               // spaces, tabs, newlines
	// Bound keywords of wildcards.
	TokenExtends // extends
	TokenSuper   // super
)

var keywords = map[string]lexer.TokenType{
	"extends": TokenExtends,
	"super":   TokenSuper,
}

// LexerError is a lexer error with position.
type LexerError struct {
	pos lexer.Position
	ch  rune
}

func (e *LexerError) Error() string {
	return e.pos.String() + ": " + ErrUnexpectedCharacter.Error() + ": " + string(e.ch)
}

// Unwrap allows errors.Is(err, ErrUnexpectedCharacter).
func (e *LexerError) Unwrap() error {
	return ErrUnexpectedCharacter
}

// refDefinition implements lexer.Definition for type references.
type refDefinition struct {
	symbols map[string]lexer.TokenType
}

func newRefLexer() *refDefinition {
	return &refDefinition{
		symbols: map[string]lexer.TokenType{
			"EOF":        TokenEOF,
			"Ident":      TokenIdent,
			"Whitespace": TokenWhitespace,
			".":          TokenDot,
			",":          TokenComma,
			"<":          TokenLt,
			">":          TokenGt,
			"?":          TokenQuestion,
			"[":          TokenLBracket,
			"]":          TokenRBracket,
			"...":        TokenEllipsis,
			"extends":    TokenExtends,
			"super":      TokenSuper,
		},
	}
}

// Symbols returns the mapping of symbol names to token types.
func (d *refDefinition) Symbols() map[string]lexer.TokenType {
	return d.symbols
}

// Lex creates a new Lexer for the given reader.
//
//nolint:ireturn // Required by participle's lexer.Definition interface.
func (d *refDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading reference")
	}

	return newLexerState(filename, string(data)), nil
}

// LexString implements lexer.StringDefinition.
//
//nolint:ireturn // Required by participle's lexer.StringDefinition interface.
func (d *refDefinition) LexString(filename string, input string) (lexer.Lexer, error) {
	return newLexerState(filename, input), nil
}

type lexerState struct {
	filename string
	input    string
	offset   int
	col      int
}

func newLexerState(filename, input string) *lexerState {
	return &lexerState{filename: filename, input: input, col: 1}
}

// Next returns the next token.
func (l *lexerState) Next() (lexer.Token, error) {
	if l.eof() {
		return lexer.EOFToken(l.pos()), nil
	}

	start := l.pos()
	r := l.peek()

	if unicode.IsSpace(r) {
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}

		return l.token(TokenWhitespace, start), nil
	}

	if isIdentStart(r) {
		l.advance()

		for !l.eof() && isIdentContinue(l.peek()) {
			l.advance()
		}

		tok := l.token(TokenIdent, start)
		if kw, ok := keywords[tok.Value]; ok {
			tok.Type = kw
		}

		return tok, nil
	}

	if r == '.' && l.peekAt(1) == '.' && l.peekAt(2) == '.' {
		l.advance()
		l.advance()
		l.advance()

		return l.token(TokenEllipsis, start), nil
	}

	l.advance()

	switch r {
	case '.':
		return l.token(TokenDot, start), nil
	case ',':
		return l.token(TokenComma, start), nil
	case '<':
		return l.token(TokenLt, start), nil
	case '>':
		return l.token(TokenGt, start), nil
	case '?':
		return l.token(TokenQuestion, start), nil
	case '[':
		return l.token(TokenLBracket, start), nil
	case ']':
		return l.token(TokenRBracket, start), nil
	}

	return lexer.Token{}, &LexerError{pos: start, ch: r}
}

func (l *lexerState) pos() lexer.Position {
	return lexer.Position{
		Filename: l.filename,
		Offset:   l.offset,
		Line:     1,
		Column:   l.col,
	}
}

func (l *lexerState) eof() bool {
	return l.offset >= len(l.input)
}

func (l *lexerState) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])

	return r
}

// peekAt looks n bytes ahead; only used for ASCII punctuation.
func (l *lexerState) peekAt(n int) rune {
	off := l.offset + n
	if off >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[off:])

	return r
}

func (l *lexerState) advance() {
	if l.eof() {
		return
	}

	_, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size
	l.col++
}

func (l *lexerState) token(typ lexer.TokenType, start lexer.Position) lexer.Token {
	return lexer.Token{
		Type:  typ,
		Value: l.input[start.Offset:l.offset],
		Pos:   start,
	}
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
