package jsfilter

import (
	"fmt"
	"regexp"
)

// Verdict is the classification of a string value.
type Verdict int

const (
	Structural Verdict = iota
	IDValue
	NoteValue
	MetaValue
	Extract
)

func (v Verdict) String() string {
	switch v {
	case IDValue:
		return "id"
	case NoteValue:
		return "note"
	case MetaValue:
		return "metadata"
	case Extract:
		return "extract"
	default:
		return "structural"
	}
}

// Rules are the compiled key path matchers, in priority order.
type Rules struct {
	id         *regexp.Regexp
	note       *regexp.Regexp
	meta       *regexp.Regexp
	extraction *regexp.Regexp
	exceptions *regexp.Regexp
	subfilter  *regexp.Regexp
	extractAll bool
}

// CompileRules compiles every configured rule. The exceptions pattern is
// compiled as is for partial matching; all other rules are anchored.
func CompileRules(p Parameters) (*Rules, error) {
	p = p.normalized()
	r := &Rules{extractAll: p.ExtractAllPairs}

	var err error
	if r.id, err = compileFull("id", p.IDRules); err != nil {
		return nil, err
	}
	if r.note, err = compileFull("note", p.NoteRules); err != nil {
		return nil, err
	}
	if r.meta, err = compileFull("generic metadata", p.GenericMetaRules); err != nil {
		return nil, err
	}
	if r.extraction, err = compileFull("extraction", p.ExtractionRules); err != nil {
		return nil, err
	}
	if r.subfilter, err = compileFull("subfilter", p.SubfilterRules); err != nil {
		return nil, err
	}
	if p.Exceptions != "" {
		if r.exceptions, err = regexp.Compile(p.Exceptions); err != nil {
			return nil, fmt.Errorf("%w: exceptions %q: %v", ErrInvalidRule, p.Exceptions, err)
		}
	}
	return r, nil
}

func compileFull(name, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s rules %q: %v", ErrInvalidRule, name, pattern, err)
	}
	return re, nil
}

// Classify decides what a string value at path is. Without a path only
// the legacy extract-all default applies.
func (r *Rules) Classify(path string, hasPath bool) Verdict {
	if hasPath {
		switch {
		case r.id != nil && r.id.MatchString(path):
			return IDValue
		case r.note != nil && r.note.MatchString(path):
			return NoteValue
		case r.meta != nil && r.meta.MatchString(path):
			return MetaValue
		}
	}

	if r.extraction != nil && hasPath {
		if r.extraction.MatchString(path) {
			return Extract
		}
		return Structural
	}

	extract := r.extractAll
	if r.exceptions != nil && hasPath && r.exceptions.MatchString(path) {
		extract = !extract
	}
	if extract {
		return Extract
	}
	return Structural
}

// Subfilter reports whether an extracted value at path goes to the
// subfilter. With no subfilter rule every value does.
func (r *Rules) Subfilter(path string, hasPath bool) bool {
	if r.subfilter == nil {
		return true
	}
	return hasPath && r.subfilter.MatchString(path)
}
