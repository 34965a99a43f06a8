package event

import (
	"strconv"
	"strings"
)

// Code markers embedded in coded text. Each inline code is written as
// CodeMarker followed by one index rune (CodeIndexBase + index).
const (
	CodeMarker    = '\uE101'
	CodeIndexBase = '\uE110'
)

// Code is an inline piece of markup found inside extractable text.
type Code struct {
	ID      int
	Data    string
	Display string
}

// Fragment is text with inline codes replaced by markers.
type Fragment struct {
	Text  string
	Codes []Code
}

// NewFragment returns a fragment without codes.
func NewFragment(text string) Fragment {
	return Fragment{Text: text}
}

// Marker returns the coded-text marker for the code at index i.
func Marker(i int) string {
	return string([]rune{CodeMarker, CodeIndexBase + rune(i)})
}

// Segments splits the coded text into alternating text and code pieces.
// For each piece exactly one of text or code is set.
func (f Fragment) Segments(fn func(text string, code *Code)) {
	runes := []rune(f.Text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != CodeMarker || i+1 >= len(runes) {
			continue
		}
		idx := int(runes[i+1] - CodeIndexBase)
		if idx < 0 || idx >= len(f.Codes) {
			continue
		}
		if start < i {
			fn(string(runes[start:i]), nil)
		}
		fn("", &f.Codes[idx])
		i++
		start = i + 1
	}
	if start < len(runes) {
		fn(string(runes[start:]), nil)
	}
}

// Plain renders the fragment with every code's data restored.
func (f Fragment) Plain() string {
	if len(f.Codes) == 0 {
		return f.Text
	}
	var sb strings.Builder
	f.Segments(func(text string, code *Code) {
		if code != nil {
			sb.WriteString(code.Data)
			return
		}
		sb.WriteString(text)
	})
	return sb.String()
}

// Recode turns plain text written against f back into coded text: the
// data of each code is replaced by its marker, searching in code order.
// Codes that no longer appear are dropped.
func (f Fragment) Recode(plain string) string {
	if len(f.Codes) == 0 {
		return plain
	}
	var sb strings.Builder
	rest := plain
	for i, c := range f.Codes {
		if c.Data == "" {
			continue
		}
		j := strings.Index(rest, c.Data)
		if j < 0 {
			continue
		}
		sb.WriteString(rest[:j])
		sb.WriteString(Marker(i))
		rest = rest[j+len(c.Data):]
	}
	sb.WriteString(rest)
	return sb.String()
}

// Note is an annotation attached to a text unit.
type Note struct {
	Text string
	// From is the key the note value was read from.
	From string
	// Annotates is always "source" for notes collected by the filter.
	Annotates string
}

// Meta is one generic metadata entry keyed by the path it came from.
type Meta struct {
	Name  string
	Value string
}

// TextUnit is an extractable value. The filter owns its structure;
// consumers may only set Target.
type TextUnit struct {
	ID       string
	Name     string
	MimeType string
	Source   Fragment
	Target   *Fragment
	Notes    []Note
	Metadata []Meta
	// Skeleton is the unit's own delimiters around its content.
	Skeleton Skeleton
	// Raw is the original source text of the content, escapes untouched.
	Raw string
}

// SetTarget replaces the translated content. Code markers in text refer to
// the source codes.
func (u *TextUnit) SetTarget(text string) {
	u.Target = &Fragment{Text: text, Codes: u.Source.Codes}
}

// Meta returns the value of the metadata entry with the given name.
func (u *TextUnit) Meta(name string) (string, bool) {
	for _, m := range u.Metadata {
		if m.Name == name {
			return m.Value, true
		}
	}
	return "", false
}

// NoteTexts returns the note texts in order.
func (u *TextUnit) NoteTexts() []string {
	if len(u.Notes) == 0 {
		return nil
	}
	out := make([]string, len(u.Notes))
	for i, n := range u.Notes {
		out[i] = n.Text
	}
	return out
}

func (u *TextUnit) String() string {
	return u.ID + "[" + u.Name + "]=" + strconv.Quote(u.Source.Plain())
}
