package lexer

import (
	"errors"
	"fmt"
)

// Kind identifies the structural role of a token.
type Kind int

const (
	EOF Kind = iota
	ObjectStart
	ObjectEnd
	ListStart
	ListEnd
	Key
	Value
	Separator
	Whitespace
	Comment
)

var kindNames = [...]string{
	EOF:         "EOF",
	ObjectStart: "ObjectStart",
	ObjectEnd:   "ObjectEnd",
	ListStart:   "ListStart",
	ListEnd:     "ListEnd",
	Key:         "Key",
	Value:       "Value",
	Separator:   "Separator",
	Whitespace:  "Whitespace",
	Comment:     "Comment",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ValueType is the lexical subtype of a key or value token.
type ValueType int

const (
	Default ValueType = iota // unquoted key
	SingleQuoted
	DoubleQuoted
	Symbol
	Number
	Boolean
	Null
)

var valueTypeNames = [...]string{
	Default:      "Default",
	SingleQuoted: "SingleQuoted",
	DoubleQuoted: "DoubleQuoted",
	Symbol:       "Symbol",
	Number:       "Number",
	Boolean:      "Boolean",
	Null:         "Null",
}

func (t ValueType) String() string {
	if int(t) < len(valueTypeNames) {
		return valueTypeNames[t]
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// Quote returns the delimiter used by quoted types, or "" for bare words.
func (t ValueType) Quote() string {
	switch t {
	case SingleQuoted:
		return "'"
	case DoubleQuoted:
		return `"`
	default:
		return ""
	}
}

// IsString reports whether t is a quoted string type.
func (t ValueType) IsString() bool {
	return t == SingleQuoted || t == DoubleQuoted
}

// Token is one lexical element with its exact source span.
type Token struct {
	Kind Kind
	// Text is the verbatim source slice, quotes included.
	Text string
	// Value is the content between the quotes (escapes untouched) for
	// strings, and equal to Text otherwise.
	Value string
	Type  ValueType
	Start int
	End   int
	Line  int
	Col   int
}

// ErrSyntax is wrapped by every lexical error.
var ErrSyntax = errors.New("syntax error")

// Error is a lexical error anchored at the start of the offending token.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Msg, e.Line, e.Col)
}

func (e *Error) Unwrap() error { return ErrSyntax }
