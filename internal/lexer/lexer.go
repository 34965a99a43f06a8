// Package lexer splits JSON and JavaScript object-literal source into a
// contiguous stream of typed tokens. Concatenating the Text of every token
// reproduces the input exactly; the stream always ends with an EOF token.
package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// frame tracks whether the next word inside an object is a key.
type frame struct {
	object    bool
	expectKey bool
}

// Lexer produces tokens strictly left to right without backtracking.
type Lexer struct {
	input  string
	pos    int
	line   int
	col    int
	frames []frame
}

// New creates a lexer over src.
func New(src string) *Lexer {
	return &Lexer{input: src, line: 1, col: 1}
}

// Tokenize lexes src completely. The returned slice ends with the EOF token.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

var numberPattern = regexp.MustCompile(`^[-+]?(?:0[xX][0-9a-fA-F]+|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?)`)

// Next returns the next token. After the end of input it keeps returning EOF.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: EOF, Start: len(l.input), End: len(l.input), Line: l.line, Col: l.col}, nil
	}

	c := l.input[l.pos]
	switch {
	case c == '{':
		l.frames = append(l.frames, frame{object: true, expectKey: true})
		return l.emit(ObjectStart, 1, Default), nil
	case c == '}':
		l.pop()
		return l.emit(ObjectEnd, 1, Default), nil
	case c == '[':
		l.frames = append(l.frames, frame{})
		return l.emit(ListStart, 1, Default), nil
	case c == ']':
		l.pop()
		return l.emit(ListEnd, 1, Default), nil
	case c == ':':
		if top := l.top(); top != nil && top.object {
			top.expectKey = false
		}
		return l.emit(Separator, 1, Default), nil
	case c == ',':
		if top := l.top(); top != nil && top.object {
			top.expectKey = true
		}
		return l.emit(Separator, 1, Default), nil
	case c == '"' || c == '\'':
		return l.lexString(c)
	case c == '/' && l.peek(1) == '/':
		end := strings.IndexByte(l.input[l.pos:], '\n')
		if end < 0 {
			end = len(l.input) - l.pos
		}
		return l.emit(Comment, end, Default), nil
	case c == '/' && l.peek(1) == '*':
		end := strings.Index(l.input[l.pos+2:], "*/")
		if end < 0 {
			return Token{}, l.errorf("unterminated comment")
		}
		return l.emit(Comment, end+4, Default), nil
	}

	if n := l.spaceLen(); n > 0 {
		return l.emit(Whitespace, n, Default), nil
	}
	if l.startsNumber() {
		return l.lexNumber()
	}

	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	switch {
	case isIdentStart(r):
		return l.lexWord()
	case r == '`' || r == '\\':
		return Token{}, l.errorf("unsupported character %q", r)
	case r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)):
		return l.emit(Separator, size, Default), nil
	default:
		return Token{}, l.errorf("unexpected character %q", r)
	}
}

func (l *Lexer) lexString(quote byte) (Token, error) {
	i := l.pos + 1
	for {
		if i >= len(l.input) {
			return Token{}, l.errorf("unterminated string")
		}
		switch l.input[i] {
		case quote:
			typ := DoubleQuoted
			if quote == '\'' {
				typ = SingleQuoted
			}
			kind := Value
			if l.keyPosition() {
				kind = Key
			}
			tok := l.emit(kind, i+1-l.pos, typ)
			tok.Value = tok.Text[1 : len(tok.Text)-1]
			return tok, nil
		case '\\':
			i += 2
			// line continuation written with CRLF
			if i < len(l.input) && l.input[i-1] == '\r' && l.input[i] == '\n' {
				i++
			}
		case '\n', '\r':
			return Token{}, l.errorf("unterminated string")
		default:
			i++
		}
	}
}

func (l *Lexer) lexNumber() (Token, error) {
	n := len(numberPattern.FindString(l.input[l.pos:]))
	if r, _ := utf8.DecodeRuneInString(l.input[l.pos+n:]); l.pos+n < len(l.input) && (isIdentPart(r) || r == '.') {
		return Token{}, l.errorf("invalid number")
	}
	typ := Number
	kind := Value
	if l.keyPosition() {
		kind, typ = Key, Default
	}
	return l.emit(kind, n, typ), nil
}

func (l *Lexer) lexWord() (Token, error) {
	_, n := utf8.DecodeRuneInString(l.input[l.pos:])
	for l.pos+n < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos+n:])
		if !isIdentPart(r) {
			break
		}
		n += size
	}
	word := l.input[l.pos : l.pos+n]
	if l.keyPosition() {
		return l.emit(Key, n, Default), nil
	}
	typ := Symbol
	switch word {
	case "true", "false":
		typ = Boolean
	case "null":
		typ = Null
	}
	return l.emit(Value, n, typ), nil
}

// emit consumes n bytes as one token and advances the line/column counters.
func (l *Lexer) emit(kind Kind, n int, typ ValueType) Token {
	text := l.input[l.pos : l.pos+n]
	tok := Token{
		Kind:  kind,
		Text:  text,
		Value: text,
		Type:  typ,
		Start: l.pos,
		End:   l.pos + n,
		Line:  l.line,
		Col:   l.col,
	}
	for _, r := range text {
		if r == '\n' {
			l.line++
			l.col = 1
			continue
		}
		l.col++
	}
	l.pos += n
	return tok
}

func (l *Lexer) errorf(format string, args ...any) error {
	return &Error{Line: l.line, Col: l.col, Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) top() *frame {
	if len(l.frames) == 0 {
		return nil
	}
	return &l.frames[len(l.frames)-1]
}

func (l *Lexer) pop() {
	if len(l.frames) > 0 {
		l.frames = l.frames[:len(l.frames)-1]
	}
}

func (l *Lexer) keyPosition() bool {
	top := l.top()
	return top != nil && top.object && top.expectKey
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset < len(l.input) {
		return l.input[l.pos+offset]
	}
	return 0
}

func (l *Lexer) spaceLen() int {
	n := 0
	for l.pos+n < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos+n:])
		if !unicode.IsSpace(r) && r != '\uFEFF' {
			break
		}
		n += size
	}
	return n
}

func (l *Lexer) startsNumber() bool {
	c := l.input[l.pos]
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '.':
		return isDigit(l.peek(1))
	case c == '-' || c == '+':
		return isDigit(l.peek(1)) || l.peek(1) == '.' && isDigit(l.peek(2))
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
