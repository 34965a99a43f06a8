// Package skeleton writes an event stream back out as a document.
package skeleton

import (
	"fmt"
	"io"
	"strings"

	"js-translator/internal/encoder"
	"js-translator/internal/event"
)

// TargetFunc supplies a translation for a text unit. Code markers in the
// returned text refer to the unit's source codes.
type TargetFunc func(u *event.TextUnit) (string, bool)

// Option configures a Writer.
type Option func(*Writer)

// WithTargets looks up translations instead of relying on TextUnit.Target.
func WithTargets(fn TargetFunc) Option {
	return func(w *Writer) { w.targets = fn }
}

// frame is one document being written. Sub-documents are buffered until
// their end so they can be written at their reference.
type frame struct {
	id       string
	out      io.Writer
	buf      *strings.Builder
	enc      encoder.Encoder
	raw      string
	quote    string
	modified bool
}

// Writer reconstructs documents from events.
type Writer struct {
	targets TargetFunc
	stack   []*frame
	subs    map[string]string
}

// NewWriter writes to out. A nil enc means the encoder announced by the
// StartDocument event.
func NewWriter(out io.Writer, enc encoder.Encoder, opts ...Option) *Writer {
	w := &Writer{
		stack: []*frame{{out: out, enc: enc}},
		subs:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) top() *frame {
	return w.stack[len(w.stack)-1]
}

// HandleEvent writes the output of one event.
func (w *Writer) HandleEvent(ev event.Event) error {
	switch ev.Type {
	case event.StartDocument:
		root := w.stack[0]
		if root.enc == nil && ev.Document != nil {
			root.enc = ev.Document.Encoder
		}
		if root.enc == nil {
			root.enc = encoder.Plain{}
		}
		return nil
	case event.EndDocument:
		return nil
	case event.StartSubDocument:
		f := &frame{id: ev.ID, buf: &strings.Builder{}, enc: encoder.Plain{}}
		f.out = f.buf
		if ev.Document != nil {
			f.raw = ev.Document.Raw
			f.quote = ev.Document.Quote
			if ev.Document.Encoder != nil {
				f.enc = ev.Document.Encoder
			}
		}
		w.stack = append(w.stack, f)
		return nil
	case event.EndSubDocument:
		return w.endSubDocument(ev.ID)
	case event.TextUnitEvent:
		return w.writeUnit(ev.Unit)
	default:
		return w.writeSkeleton(ev.Skeleton)
	}
}

func (w *Writer) endSubDocument(id string) error {
	if len(w.stack) < 2 {
		return fmt.Errorf("end of sub-document %q without start", id)
	}
	f := w.top()
	w.stack = w.stack[:len(w.stack)-1]
	parent := w.top()

	if !f.modified {
		w.subs[f.id] = f.raw
		return nil
	}
	parent.modified = true
	out := parent.enc.Encode(f.buf.String())
	if f.quote == "'" {
		out = singleQuoted(out)
	}
	w.subs[f.id] = out
	return nil
}

func (w *Writer) writeSkeleton(s event.Skeleton) error {
	for _, p := range s {
		switch p.Kind {
		case event.Literal:
			if err := w.write(p.Text); err != nil {
				return err
			}
		case event.Ref:
			text, ok := w.subs[p.Text]
			if !ok {
				return fmt.Errorf("reference to unknown sub-document %q", p.Text)
			}
			if err := w.write(text); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) writeUnit(u *event.TextUnit) error {
	for _, p := range u.Skeleton {
		switch p.Kind {
		case event.Content:
			if err := w.write(w.content(u)); err != nil {
				return err
			}
		default:
			if err := w.writeSkeleton(event.Skeleton{p}); err != nil {
				return err
			}
		}
	}
	return nil
}

// content renders the unit's text. Untranslated units keep their exact
// source text.
func (w *Writer) content(u *event.TextUnit) string {
	target := u.Target
	if w.targets != nil {
		if text, ok := w.targets(u); ok {
			target = &event.Fragment{Text: text, Codes: u.Source.Codes}
		}
	}
	if target == nil {
		return u.Raw
	}

	f := w.top()
	f.modified = true

	var sb strings.Builder
	target.Segments(func(text string, code *event.Code) {
		if code != nil {
			sb.WriteString(code.Data)
			return
		}
		sb.WriteString(f.enc.Encode(text))
	})
	out := sb.String()

	if u.Skeleton.First() == "'" && u.Skeleton.Last() == "'" {
		out = singleQuoted(out)
	}
	return out
}

// singleQuoted turns double-quote escaped text into the body of a
// single-quoted literal.
func singleQuoted(s string) string {
	s = strings.ReplaceAll(s, "'", `\'`)
	return strings.ReplaceAll(s, `\"`, `"`)
}

func (w *Writer) write(s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(w.top().out, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Render writes events into a string.
func Render(events []event.Event, enc encoder.Encoder, opts ...Option) (string, error) {
	var sb strings.Builder
	w := NewWriter(&sb, enc, opts...)
	for _, ev := range events {
		if err := w.HandleEvent(ev); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
