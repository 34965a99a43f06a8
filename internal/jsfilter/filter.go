// Package jsfilter extracts translatable strings from JSON and JavaScript
// object literals and produces an event stream that reconstructs the input.
package jsfilter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/rs/zerolog/log"

	"js-translator/internal/codefinder"
	"js-translator/internal/encoder"
	"js-translator/internal/event"
	"js-translator/internal/lexer"
	"js-translator/internal/textutil"
)

// Filter holds a compiled configuration. It is safe for concurrent use;
// every Open gets its own parse state.
type Filter struct {
	params Parameters
	rules  *Rules
	finder *codefinder.Finder
	enc    *encoder.JSON
	sub    Subfilter
}

// Option configures a Filter.
type Option func(*Filter)

// WithSubfilter routes extracted values to s.
func WithSubfilter(s Subfilter) Option {
	return func(f *Filter) { f.sub = s }
}

// New validates and compiles p.
func New(p Parameters, opts ...Option) (*Filter, error) {
	p = p.normalized()
	f := &Filter{params: p, enc: encoder.NewJSON(p.EscapeForwardSlashes)}
	for _, opt := range opts {
		opt(f)
	}

	if p.UseCodeFinder && (f.sub != nil || p.Subfilter != "") {
		return nil, ErrConflictingOptions
	}

	rules, err := CompileRules(p)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}
	f.rules = rules

	if p.UseCodeFinder {
		finder, err := codefinder.New(p.CodeFinderRules)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRule, err)
		}
		f.finder = finder
	}
	return f, nil
}

// Parameters returns the normalized configuration.
func (f *Filter) Parameters() Parameters { return f.params }

// Name implements Subfilter.
func (f *Filter) Name() string { return "js" }

// Encoder returns the output encoder for text written into this format.
func (f *Filter) Encoder() encoder.Encoder { return f.enc }

// Open starts a lazy parse of input. Nothing is read until Next is called.
func (f *Filter) Open(ctx context.Context, name, input string) *Reader {
	return f.open(ctx, name, input, "")
}

func (f *Filter) open(ctx context.Context, name, input, prefix string) *Reader {
	pc := &parseContext{
		f:      f,
		ctx:    ctx,
		name:   name,
		docID:  prefix + "doc",
		prefix: prefix,
		b:      newBuilder(prefix),
		paths:  newPathBuilder(f.params.UseFullKeyPath, f.params.UseLeadingSlashOnKeyPath),
	}
	return &Reader{ctx: ctx, pc: pc, v: newVisitor(input)}
}

// Extract parses input to completion.
func (f *Filter) Extract(ctx context.Context, name, input string) ([]event.Event, error) {
	return collect(f.Open(ctx, name, input))
}

// Events implements Subfilter: the value is parsed as an embedded document
// whose ids are prefixed with the sub-document id.
func (f *Filter) Events(ctx context.Context, in SubInput) ([]event.Event, error) {
	return collect(f.open(ctx, in.ParentName, in.Text, in.ID+"_"))
}

func collect(r *Reader) ([]event.Event, error) {
	var events []event.Event
	for ev, err := range r.Events() {
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Reader hands out the events of one document on demand. Once it has
// failed or reached the end it keeps returning the same error.
type Reader struct {
	ctx      context.Context
	pc       *parseContext
	v        *visitor
	finished bool
	err      error
}

// Next returns the next event, or io.EOF after EndDocument.
func (r *Reader) Next() (event.Event, error) {
	if r.err != nil {
		return event.Event{}, r.err
	}
	for {
		if ev, ok := r.pc.b.next(); ok {
			return ev, nil
		}
		if r.finished {
			r.err = io.EOF
			return event.Event{}, r.err
		}
		if err := r.ctx.Err(); err != nil {
			r.err = err
			return event.Event{}, err
		}
		done, err := r.v.step(r.pc)
		if err != nil {
			r.err = err
			return event.Event{}, err
		}
		r.finished = done
	}
}

// Events ranges over the remaining events. A parse error is yielded once
// as the last element.
func (r *Reader) Events() iter.Seq2[event.Event, error] {
	return func(yield func(event.Event, error) bool) {
		for {
			ev, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(event.Event{}, err)
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}

// pendingScope collects what an object assigns to its text units when it
// closes. The document root has one too.
type pendingScope struct {
	id    string
	hasID bool
	notes []event.Note
	meta  []event.Meta
	units []*event.TextUnit
}

// parseContext is the state of one document parse.
type parseContext struct {
	f      *Filter
	ctx    context.Context
	name   string
	docID  string
	prefix string
	b      *builder
	paths  *pathBuilder
	scopes []*pendingScope

	key     string
	hasKey  bool
	keyType KeyType

	subIndex int
}

func (pc *parseContext) scope() *pendingScope {
	return pc.scopes[len(pc.scopes)-1]
}

// takeKey returns and clears the current key.
func (pc *parseContext) takeKey() (string, bool) {
	key, ok := pc.key, pc.hasKey
	pc.key, pc.hasKey, pc.keyType = "", false, KeyDefault
	return key, ok
}

// finalize applies the scope's id, notes and metadata to its units and
// releases them.
func (pc *parseContext) finalize(s *pendingScope) {
	for _, u := range s.units {
		if s.hasID {
			u.Name = s.id
		}
		if len(s.notes) > 0 {
			u.Notes = append([]event.Note(nil), s.notes...)
		}
		if len(s.meta) > 0 {
			u.Metadata = append(u.Metadata, s.meta...)
		}
		pc.b.release(u)
	}
	*s = pendingScope{}
}

func (pc *parseContext) OnStart() error {
	pc.scopes = []*pendingScope{{}}
	pc.b.push(event.Event{
		Type: event.StartDocument,
		ID:   pc.docID,
		Document: &event.Document{
			ID:       pc.docID,
			Name:     pc.name,
			MimeType: MimeType,
			Encoder:  pc.f.enc,
		},
	})
	return nil
}

func (pc *parseContext) OnEnd() error {
	if n := pc.paths.depth(); n > 0 {
		return fmt.Errorf("%w: input ended with %d open scopes", ErrUnbalanced, n)
	}
	pc.finalize(pc.scopes[0])
	pc.b.push(event.Event{Type: event.EndDocument, ID: pc.docID})
	log.Debug().Str("document", pc.name).Int("units", pc.b.units).Msg("Parsed document")
	return nil
}

func (pc *parseContext) OnComment(text string) error {
	pc.b.addDocumentPart(text)
	return nil
}

func (pc *parseContext) OnKey(key string, vt lexer.ValueType, kt KeyType) error {
	q := vt.Quote()
	pc.b.addDocumentPart(q + key + q)
	pc.key, pc.hasKey, pc.keyType = key, true, kt
	return nil
}

func (pc *parseContext) OnSeparator(text string) error {
	pc.b.addDocumentPart(text)
	return nil
}

func (pc *parseContext) OnWhitespace(text string) error {
	pc.b.addDocumentPart(text)
	return nil
}

func (pc *parseContext) OnObjectStart() error {
	key, ok := pc.takeKey()
	pc.paths.enterObject(key, ok)
	pc.b.startGroup("{", "object")
	pc.scopes = append(pc.scopes, &pendingScope{})
	return nil
}

func (pc *parseContext) OnObjectEnd() error {
	if err := pc.paths.exit(KeyObject); err != nil {
		return err
	}
	pc.takeKey()
	pc.finalize(pc.scope())
	pc.scopes = pc.scopes[:len(pc.scopes)-1]
	pc.b.endGroup("}", "object")
	return nil
}

func (pc *parseContext) OnListStart() error {
	key, ok := pc.takeKey()
	pc.paths.enterList(key, ok)
	pc.b.startGroup("[", "list")
	return nil
}

func (pc *parseContext) OnListEnd() error {
	if err := pc.paths.exit(KeyList); err != nil {
		return err
	}
	pc.b.endGroup("]", "list")
	return nil
}

func (pc *parseContext) OnValue(value string, vt lexer.ValueType) error {
	key, hasKey := pc.takeKey()
	if !hasKey {
		pc.paths.element()
	}
	// keyless values, list elements included, are standalone
	standalone := !hasKey

	q := vt.Quote()
	literal := q + value + q

	if !vt.IsString() || (standalone && !pc.f.params.ExtractStandalone) {
		pc.b.addDocumentPart(literal)
		return nil
	}

	path, hasPath := pc.paths.path(key, hasKey)
	s := pc.scope()

	switch pc.f.rules.Classify(path, hasPath) {
	case IDValue:
		s.id, s.hasID = value, true
		pc.b.addDocumentPart(literal)
		return nil
	case NoteValue:
		s.notes = append(s.notes, event.Note{Text: value, From: key, Annotates: "source"})
		pc.b.addDocumentPart(literal)
		return nil
	case MetaValue:
		s.meta = append(s.meta, event.Meta{Name: path, Value: value})
		pc.b.addDocumentPart(literal)
		return nil
	case Structural:
		pc.b.addDocumentPart(literal)
		return nil
	}

	if pc.f.sub != nil && pc.f.rules.Subfilter(path, hasPath) {
		return pc.callSubfilter(value, q, path)
	}

	u := &event.TextUnit{
		ID:       pc.b.newUnitID(),
		MimeType: MimeType,
		Source:   pc.postProcess(value),
		Skeleton: event.Skeleton{
			{Kind: event.Literal, Text: q},
			{Kind: event.Content},
			{Kind: event.Literal, Text: q},
		},
		Raw: value,
	}
	if pc.f.params.UseKeyAsName && hasPath {
		u.Name = path
	}
	s.units = append(s.units, u)
	pc.b.addTextUnit(u)

	log.Debug().Str("key", path).Str("id", u.ID).Str("value", textutil.Truncate(value, 60)).Msg("Extracted value")
	return nil
}

// postProcess decodes a raw string value and, with the code finder on,
// turns inline markup into codes written back in output form.
func (pc *parseContext) postProcess(value string) event.Fragment {
	text := Decode(value)
	if pc.f.finder == nil {
		return event.NewFragment(text)
	}
	frag := pc.f.finder.Process(text)
	for i := range frag.Codes {
		frag.Codes[i].Data = pc.f.enc.Encode(frag.Codes[i].Data)
		frag.Codes[i].Display = pc.f.enc.Encode(frag.Codes[i].Display)
	}
	return frag
}
