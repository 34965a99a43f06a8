package subfilter

import (
	"context"
	"strings"

	"js-translator/internal/encoder"
	"js-translator/internal/event"
	"js-translator/internal/jsfilter"
)

// PropertiesMimeType is stamped on units of the properties subfilter.
const PropertiesMimeType = "text/x-properties"

// Properties extracts the values of key=value lines. Comments (";" "#"
// "!"), section headers and blank lines are kept as they are. Units are
// named "section.key", or "key" outside a section.
type Properties struct{}

func NewProperties() *Properties { return &Properties{} }

func (p *Properties) Name() string { return "properties" }

func (p *Properties) Encoder() encoder.Encoder { return encoder.Plain{} }

func (p *Properties) Events(ctx context.Context, in jsfilter.SubInput) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := newStream(in, PropertiesMimeType)
	currentSection := ""

	for _, line := range strings.SplitAfter(in.Text, "\n") {
		body, eol := splitLine(line)
		trimmedLine := strings.TrimSpace(body)

		switch {
		case trimmedLine == "" || strings.HasPrefix(trimmedLine, ";") ||
			strings.HasPrefix(trimmedLine, "#") || strings.HasPrefix(trimmedLine, "!"):
			s.literal(body)
		case strings.HasPrefix(trimmedLine, "[") && strings.HasSuffix(trimmedLine, "]"):
			currentSection = strings.TrimSpace(trimmedLine[1 : len(trimmedLine)-1])
			s.literal(body)
		default:
			p.pair(s, body, currentSection)
		}
		s.literal(eol)
	}
	return s.finish(), nil
}

func (p *Properties) pair(s *stream, line, section string) {
	eqIdx := strings.Index(line, "=")
	if eqIdx < 0 {
		s.literal(line)
		return
	}

	key := strings.TrimSpace(line[:eqIdx])
	lead, value, trail := trimmed(line[eqIdx+1:])
	s.literal(line[:eqIdx+1] + lead)
	if value != "" {
		name := key
		if section != "" {
			name = section + "." + key
		}
		s.unit(value, name, PropertiesMimeType)
	}
	s.literal(trail)
}
