package jsfilter

import (
	"context"
	"fmt"

	"js-translator/internal/lexer"
)

// Handler receives the structural callbacks of one document in order.
// OnStart and OnEnd bracket each document. Returning an error aborts it.
type Handler interface {
	OnStart() error
	OnEnd() error
	OnComment(text string) error
	// OnKey receives the key without its quotes.
	OnKey(key string, valueType lexer.ValueType, keyType KeyType) error
	// OnSeparator receives ":" "," and any other punctuation between values.
	OnSeparator(text string) error
	// OnValue receives string values without quotes (escapes untouched) and
	// bare values verbatim.
	OnValue(value string, valueType lexer.ValueType) error
	OnWhitespace(text string) error
	OnObjectStart() error
	OnObjectEnd() error
	OnListStart() error
	OnListEnd() error
}

// visitor turns tokens into Handler calls, one token per step.
type visitor struct {
	lx      *lexer.Lexer
	started bool
}

func newVisitor(src string) *visitor {
	return &visitor{lx: lexer.New(src)}
}

// step performs one Handler call. done is true once OnEnd has run.
func (v *visitor) step(h Handler) (done bool, err error) {
	if !v.started {
		v.started = true
		return false, h.OnStart()
	}

	tok, err := v.lx.Next()
	if err != nil {
		return false, fmt.Errorf("parse document: %w", err)
	}

	switch tok.Kind {
	case lexer.EOF:
		return true, h.OnEnd()
	case lexer.ObjectStart:
		return false, h.OnObjectStart()
	case lexer.ObjectEnd:
		return false, h.OnObjectEnd()
	case lexer.ListStart:
		return false, h.OnListStart()
	case lexer.ListEnd:
		return false, h.OnListEnd()
	case lexer.Key:
		return false, h.OnKey(tok.Value, tok.Type, KeyValue)
	case lexer.Value:
		return false, h.OnValue(tok.Value, tok.Type)
	case lexer.Comment:
		return false, h.OnComment(tok.Text)
	case lexer.Whitespace:
		return false, h.OnWhitespace(tok.Text)
	default:
		return false, h.OnSeparator(tok.Text)
	}
}

// Visit drives h over the whole of src.
func Visit(ctx context.Context, src string, h Handler) error {
	v := newVisitor(src)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := v.step(h)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
