package subfilter

import (
	"context"
	"strings"

	"js-translator/internal/encoder"
	"js-translator/internal/event"
	"js-translator/internal/jsfilter"
	"js-translator/internal/textutil"
)

// TextMimeType is stamped on units of the plain text subfilter.
const TextMimeType = "text/plain"

// Text treats an embedded value as plain text: every non-blank line is a
// text unit, or every non-blank column when the lines are tab separated.
type Text struct{}

func NewText() *Text { return &Text{} }

func (t *Text) Name() string { return "text" }

func (t *Text) Encoder() encoder.Encoder { return encoder.Plain{} }

func (t *Text) Events(ctx context.Context, in jsfilter.SubInput) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines := strings.SplitAfter(in.Text, "\n")
	bodies := make([]string, len(lines))
	for i, l := range lines {
		bodies[i], _ = splitLine(l)
	}
	tsv := detectTSV(bodies)

	s := newStream(in, TextMimeType)
	for _, line := range lines {
		body, eol := splitLine(line)
		if tsv {
			for i, col := range strings.Split(body, "\t") {
				if i > 0 {
					s.literal("\t")
				}
				t.cell(s, col)
			}
		} else {
			t.cell(s, body)
		}
		s.literal(eol)
	}
	return s.finish(), nil
}

func (t *Text) cell(s *stream, text string) {
	lead, content, trail := trimmed(text)
	s.literal(lead)
	if content != "" {
		s.unit(content, "", TextMimeType)
	}
	s.literal(trail)
}

// detectTSV checks if the text has consistent tab-separated columns.
func detectTSV(lines []string) bool {
	if len(lines) < 2 {
		return false
	}

	tabCounts := make(map[int]int)
	sampleSize := min(len(lines), 20)
	nonEmptyLines := 0

	for i := 0; i < sampleSize; i++ {
		line := lines[i]
		if textutil.IsBlank(line) {
			continue
		}
		nonEmptyLines++
		if count := strings.Count(line, "\t"); count > 0 {
			tabCounts[count]++
		}
	}

	if nonEmptyLines == 0 {
		return false
	}

	// Find the most common tab count.
	maxCount := 0
	for _, c := range tabCounts {
		maxCount = max(maxCount, c)
	}

	// If >60% of non-empty lines share the same tab count, it's TSV.
	return float64(maxCount)/float64(nonEmptyLines) > 0.6
}
