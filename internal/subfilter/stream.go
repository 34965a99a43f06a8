package subfilter

import (
	"strconv"

	"js-translator/internal/encoder"
	"js-translator/internal/event"
	"js-translator/internal/jsfilter"
)

// stream assembles the events of one embedded document.
type stream struct {
	prefix string
	events []event.Event
	part   event.Skeleton
	units  int
	parts  int
}

func newStream(in jsfilter.SubInput, mimeType string) *stream {
	s := &stream{prefix: in.ID + "_"}
	s.events = append(s.events, event.Event{
		Type: event.StartDocument,
		ID:   in.ID,
		Document: &event.Document{
			ID:         in.ID,
			Name:       in.ParentName,
			MimeType:   mimeType,
			ParentID:   in.ParentID,
			ParentName: in.ParentName,
			Encoder:    encoder.Plain{},
		},
	})
	return s
}

func (s *stream) literal(text string) {
	s.part.Append(text)
}

func (s *stream) flush() {
	if len(s.part) == 0 {
		return
	}
	s.parts++
	s.events = append(s.events, event.Event{
		Type:     event.DocumentPart,
		ID:       s.prefix + "dp" + strconv.Itoa(s.parts),
		Skeleton: s.part,
	})
	s.part = nil
}

func (s *stream) unit(text, name, mimeType string) *event.TextUnit {
	s.flush()
	s.units++
	u := &event.TextUnit{
		ID:       s.prefix + "tu" + strconv.Itoa(s.units),
		Name:     name,
		MimeType: mimeType,
		Source:   event.NewFragment(text),
		Skeleton: event.Skeleton{{Kind: event.Content}},
		Raw:      text,
	}
	s.events = append(s.events, event.Event{Type: event.TextUnitEvent, ID: u.ID, Unit: u})
	return u
}

func (s *stream) finish() []event.Event {
	s.flush()
	return append(s.events, event.Event{Type: event.EndDocument, ID: s.events[0].ID})
}

// splitLine separates a line from its terminator.
func splitLine(line string) (body, eol string) {
	switch {
	case len(line) >= 2 && line[len(line)-2:] == "\r\n":
		return line[:len(line)-2], "\r\n"
	case len(line) >= 1 && line[len(line)-1] == '\n':
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

// trimmed splits s into leading space, content and trailing space.
func trimmed(s string) (lead, content, trail string) {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[:start], s[start:end], s[end:]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}
