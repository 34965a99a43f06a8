// Package event holds the resource model produced by the filters: a flat,
// ordered stream of tagged events whose skeletons reproduce the document.
package event

import (
	"fmt"

	"js-translator/internal/encoder"
)

// Type tags an Event.
type Type int

const (
	StartDocument Type = iota
	EndDocument
	StartSubDocument
	EndSubDocument
	StartGroup
	EndGroup
	TextUnitEvent
	DocumentPart
)

var typeNames = [...]string{
	StartDocument:    "StartDocument",
	EndDocument:      "EndDocument",
	StartSubDocument: "StartSubDocument",
	EndSubDocument:   "EndSubDocument",
	StartGroup:       "StartGroup",
	EndGroup:         "EndGroup",
	TextUnitEvent:    "TextUnit",
	DocumentPart:     "DocumentPart",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Document describes a document or sub-document.
type Document struct {
	ID       string
	Name     string
	MimeType string
	// ParentID and ParentName are set for sub-documents.
	ParentID   string
	ParentName string
	// Raw is the original, still escaped value a sub-document was read
	// from. It is written back unchanged when nothing inside was translated.
	Raw string
	// Quote is the delimiter around Raw in the parent document.
	Quote string
	// Encoder escapes text written into this document.
	Encoder encoder.Encoder
}

// Event is one element of a filter's output stream.
type Event struct {
	Type Type
	ID   string
	// Name is the group kind ("object" or "list") for group events.
	Name     string
	Skeleton Skeleton
	Unit     *TextUnit
	Document *Document
}

func (e Event) String() string {
	switch e.Type {
	case TextUnitEvent:
		return fmt.Sprintf("%s %s", e.Type, e.Unit)
	case StartDocument, StartSubDocument, EndDocument, EndSubDocument:
		return fmt.Sprintf("%s %s", e.Type, e.ID)
	default:
		return fmt.Sprintf("%s %q", e.Type, e.Skeleton.String())
	}
}

// TextUnits returns the text units of events in order.
func TextUnits(events []Event) []*TextUnit {
	var units []*TextUnit
	for _, ev := range events {
		if ev.Type == TextUnitEvent {
			units = append(units, ev.Unit)
		}
	}
	return units
}
