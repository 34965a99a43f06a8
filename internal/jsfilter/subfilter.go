package jsfilter

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"js-translator/internal/encoder"
	"js-translator/internal/event"
)

// Subfilter parses an extracted value as an embedded document.
type Subfilter interface {
	Name() string
	// Encoder escapes text written into the embedded format.
	Encoder() encoder.Encoder
	// Events returns the complete event stream of the embedded document,
	// StartDocument and EndDocument included.
	Events(ctx context.Context, in SubInput) ([]event.Event, error)
}

// SubInput is one value handed to a Subfilter.
type SubInput struct {
	// ID is the sub-document id; implementations should prefix their own
	// ids with it.
	ID         string
	ParentID   string
	ParentName string
	// Text is the decoded value.
	Text string
}

// callSubfilter runs the subfilter on value and splices its events in
// place of a text unit. The parent skeleton gets a single reference.
func (pc *parseContext) callSubfilter(value, quote, path string) error {
	pc.subIndex++
	id := pc.prefix + "sf" + strconv.Itoa(pc.subIndex)
	sub := pc.f.sub

	in := SubInput{ID: id, ParentID: pc.docID, ParentName: path, Text: Decode(value)}
	events, err := sub.Events(pc.ctx, in)
	if err != nil {
		return fmt.Errorf("%w: %s on %q: %w", ErrSubfilter, sub.Name(), path, err)
	}

	doc := &event.Document{
		ID:         id,
		Name:       path,
		ParentID:   pc.docID,
		ParentName: path,
		Raw:        value,
		Quote:      quote,
		Encoder:    sub.Encoder(),
	}
	pc.b.push(event.Event{Type: event.StartSubDocument, ID: id, Document: doc})

	s := pc.scope()
	units := 0
	for _, ev := range events {
		switch ev.Type {
		case event.StartDocument:
			if ev.Document != nil {
				doc.MimeType = ev.Document.MimeType
			}
		case event.EndDocument:
		case event.TextUnitEvent:
			s.units = append(s.units, ev.Unit)
			pc.b.addTextUnit(ev.Unit)
			units++
		default:
			pc.b.push(ev)
		}
	}
	pc.b.push(event.Event{Type: event.EndSubDocument, ID: id, Document: doc})

	pc.b.addDocumentPart(quote)
	pc.b.addRef(id)
	pc.b.addDocumentPart(quote)

	log.Debug().Str("key", path).Str("subfilter", sub.Name()).Int("units", units).Msg("Parsed embedded document")
	return nil
}
