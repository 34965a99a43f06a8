// Package interpolation finds runtime placeholders such as {0}, %s and
// ${name} inside extracted strings.
package interpolation

import (
	"cmp"
	"regexp"
	"slices"
)

// Piece is a run of literal text or a single placeholder.
type Piece struct {
	Text string
	Var  bool
}

type varMatch struct {
	start, end int
}

// patterns to detect interpolation variables in UI strings.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_.]*\}`),        // ${value}
	regexp.MustCompile(`\{\{\s*[a-zA-Z_][a-zA-Z0-9_.]*\s*\}\}`), // {{ value }}
	regexp.MustCompile(`\{[0-9]+\}`),                           // {0}, {1}
	regexp.MustCompile(`%[-+0-9]*\.?[0-9]*[dsfieEgGxXoubcpq]`), // %d, %s, %2d
	regexp.MustCompile(`%%`),                                   // escaped percent literal
}

// matches returns non-overlapping placeholder positions in order.
func matches(text string) []varMatch {
	var all []varMatch
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			all = append(all, varMatch{start: loc[0], end: loc[1]})
		}
	}

	// by position, longest first on ties
	slices.SortFunc(all, func(a, b varMatch) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(b.end, a.end)
	})

	var filtered []varMatch
	lastEnd := -1
	for _, m := range all {
		if m.start >= lastEnd {
			filtered = append(filtered, m)
			lastEnd = m.end
		}
	}
	return filtered
}

// Split cuts text into literal and placeholder pieces.
func Split(text string) []Piece {
	var pieces []Piece
	pos := 0
	for _, m := range matches(text) {
		if m.start > pos {
			pieces = append(pieces, Piece{Text: text[pos:m.start]})
		}
		pieces = append(pieces, Piece{Text: text[m.start:m.end], Var: true})
		pos = m.end
	}
	if pos < len(text) {
		pieces = append(pieces, Piece{Text: text[pos:]})
	}
	return pieces
}

// Vars returns the placeholders of text in order.
func Vars(text string) []string {
	var vars []string
	for _, m := range matches(text) {
		vars = append(vars, text[m.start:m.end])
	}
	return vars
}

// Missing returns the placeholders of source that translated lacks.
func Missing(source, translated string) []string {
	have := make(map[string]int)
	for _, v := range Vars(translated) {
		have[v]++
	}
	var missing []string
	for _, v := range Vars(source) {
		if have[v] > 0 {
			have[v]--
			continue
		}
		missing = append(missing, v)
	}
	return missing
}
