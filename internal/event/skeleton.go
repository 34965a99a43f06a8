package event

import "strings"

// PartKind distinguishes the pieces of a skeleton.
type PartKind int

const (
	// Literal text copied to the output as is.
	Literal PartKind = iota
	// Content marks where a text unit's content goes.
	Content
	// Ref points at a sub-document by ID.
	Ref
)

// Part is one skeleton fragment.
type Part struct {
	Kind PartKind
	Text string
}

// Skeleton is the ordered literal-plus-placeholder representation of a
// piece of the document.
type Skeleton []Part

// Append adds literal text, merging it with a trailing literal part.
func (s *Skeleton) Append(text string) {
	if text == "" {
		return
	}
	if n := len(*s); n > 0 && (*s)[n-1].Kind == Literal {
		(*s)[n-1].Text += text
		return
	}
	*s = append(*s, Part{Kind: Literal, Text: text})
}

// AppendContent adds the content placeholder of a text unit.
func (s *Skeleton) AppendContent() {
	*s = append(*s, Part{Kind: Content})
}

// AppendRef adds a reference to the sub-document with the given ID.
func (s *Skeleton) AppendRef(id string) {
	*s = append(*s, Part{Kind: Ref, Text: id})
}

// First returns the text of the first part, or "" for an empty skeleton.
func (s Skeleton) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0].Text
}

// Last returns the text of the last part, or "" for an empty skeleton.
func (s Skeleton) Last() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1].Text
}

// String renders the skeleton with placeholders shown as [#$content] and
// [#$ref:ID]; useful for logging and tests.
func (s Skeleton) String() string {
	var sb strings.Builder
	for _, p := range s {
		switch p.Kind {
		case Content:
			sb.WriteString("[#$content]")
		case Ref:
			sb.WriteString("[#$ref:" + p.Text + "]")
		default:
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}
