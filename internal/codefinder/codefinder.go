// Package codefinder locates inline markup inside extracted text and
// replaces each occurrence with a code marker so translators cannot break it.
package codefinder

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"

	"js-translator/internal/event"
)

// DefaultRule matches HTML/XML-like tags.
const DefaultRule = `</?([A-Z0-9a-z]*)\b[^>]*>`

// Finder holds the compiled code rules.
type Finder struct {
	patterns []*regexp.Regexp
}

// span is a detected code position.
type span struct {
	start, end int
}

// New compiles the rules. An empty rule list yields a finder that never
// matches.
func New(rules []string) (*Finder, error) {
	f := &Finder{}
	for _, r := range rules {
		if r == "" {
			continue
		}
		re, err := regexp.Compile(r)
		if err != nil {
			return nil, fmt.Errorf("compile code rule %q: %w", r, err)
		}
		f.patterns = append(f.patterns, re)
	}
	return f, nil
}

// Process returns text as a fragment whose codes are the rule matches.
func (f *Finder) Process(text string) event.Fragment {
	var spans []span
	for _, p := range f.patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			spans = append(spans, span{start: loc[0], end: loc[1]})
		}
	}
	if len(spans) == 0 {
		return event.NewFragment(text)
	}

	// Earliest first; on equal starts the longest wins.
	slices.SortFunc(spans, func(a, b span) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(b.end-b.start, a.end-a.start)
	})

	frag := event.Fragment{}
	coded := make([]byte, 0, len(text))
	lastEnd := 0
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}
		coded = append(coded, text[lastEnd:s.start]...)
		data := text[s.start:s.end]
		coded = append(coded, event.Marker(len(frag.Codes))...)
		frag.Codes = append(frag.Codes, event.Code{
			ID:      len(frag.Codes) + 1,
			Data:    data,
			Display: data,
		})
		lastEnd = s.end
	}
	coded = append(coded, text[lastEnd:]...)
	frag.Text = string(coded)
	return frag
}
