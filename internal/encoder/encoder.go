// Package encoder escapes text for the output context it is written into.
package encoder

import (
	"fmt"
	"strings"
)

// Encoder escapes translated text before it is written to the output.
type Encoder interface {
	Encode(text string) string
}

// JSON escapes text for a JSON / JavaScript string literal.
type JSON struct {
	// EscapeForwardSlashes writes "/" as "\/".
	EscapeForwardSlashes bool
}

// NewJSON returns a JSON encoder with the given forward slash behavior.
func NewJSON(escapeForwardSlashes bool) *JSON {
	return &JSON{EscapeForwardSlashes: escapeForwardSlashes}
}

func (e *JSON) Encode(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '/':
			if e.EscapeForwardSlashes {
				sb.WriteString(`\/`)
			} else {
				sb.WriteRune(r)
			}
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Plain writes text unchanged.
type Plain struct{}

func (Plain) Encode(text string) string { return text }
